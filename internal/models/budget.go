package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

	ErrInvalidMonth       = errors.New("month must be in YYYY-MM format")
	ErrNonPositiveBudget  = errors.New("budget amount must be greater than zero")
	ErrMissingBudgetOwner = errors.New("budget owner is required")
)

// Budget holds one spending target per (owner, month). Setting a budget for
// a month that already has one overwrites the amount rather than creating a
// second row.
type Budget struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_owner_month" json:"owner_id"`
	Month       string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budgets_owner_month" json:"month"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.OwnerID == uuid.Nil {
		return ErrMissingBudgetOwner
	}

	if !IsValidMonth(b.Month) {
		return ErrInvalidMonth
	}

	if !b.TotalAmount.IsPositive() {
		return ErrNonPositiveBudget
	}

	return nil
}

func (b *Budget) TableName() string {
	return "budgets"
}

// IsValidMonth checks a YYYY-MM month key.
func IsValidMonth(month string) bool {
	return monthRegex.MatchString(month)
}

// CurrentMonth returns the YYYY-MM key for the current calendar month.
func CurrentMonth() string {
	return time.Now().Format(MonthLayout)
}
