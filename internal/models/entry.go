package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"

	// MonthLayout is the canonical key for per-month documents (budgets,
	// expense summaries).
	MonthLayout = "2006-01"

	// DateLayout is the wire format for entry dates.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrNegativeAmount     = errors.New("entry amount must not be negative")
	ErrMissingEntryDate   = errors.New("entry date is required")
	ErrMissingCategoryRef = errors.New("entry category is required")
)

// Entry is the atomic financial fact: a single dated income or expense
// record. Identity is immutable; amount, category, date and description may
// change via update.
type Entry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

func (e *Entry) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

func (e *Entry) Validate() error {
	if e.OwnerID == uuid.Nil {
		return errors.New("entry owner is required")
	}

	if !IsValidEntryType(e.Type) {
		return ErrInvalidEntryType
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if e.CategoryID == uuid.Nil {
		return ErrMissingCategoryRef
	}

	if e.Date.IsZero() {
		return ErrMissingEntryDate
	}

	return nil
}

// IsExpense reports whether the entry contributes to the expense summary.
func (e *Entry) IsExpense() bool {
	return e.Type == EntryTypeExpense
}

// Month returns the canonical YYYY-MM bucket key for the entry date.
func (e *Entry) Month() string {
	return e.Date.Format(MonthLayout)
}

func (e *Entry) TableName() string {
	return "entries"
}

// IsValidEntryType checks if the entry type is valid
func IsValidEntryType(entryType string) bool {
	switch entryType {
	case EntryTypeIncome, EntryTypeExpense:
		return true
	default:
		return false
	}
}
