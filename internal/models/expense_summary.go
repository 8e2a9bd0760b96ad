package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseSummary is the denormalized running total of expenses for one
// (owner, month). It is maintained incrementally as entries are written, not
// recomputed, and is the system of record for "how much has this user spent
// this month". Category buckets live in ExpenseSummaryItem rows keyed by the
// category id so renames do not orphan them.
//
// Invariant: TotalExpense equals the sum of the item amounts for the same
// (owner, month). Both sides are updated atomically in one transaction.
type ExpenseSummary struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_expense_summaries_owner_month" json:"owner_id"`
	Month        string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_expense_summaries_owner_month" json:"month"`
	TotalExpense decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_expense"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	Items []ExpenseSummaryItem `gorm:"foreignKey:OwnerID,Month;references:OwnerID,Month" json:"items,omitempty"`
}

func (es *ExpenseSummary) BeforeCreate(tx *gorm.DB) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}

	now := time.Now()
	if es.CreatedAt.IsZero() {
		es.CreatedAt = now
	}
	if es.UpdatedAt.IsZero() {
		es.UpdatedAt = now
	}

	return nil
}

func (es *ExpenseSummary) TableName() string {
	return "expense_summaries"
}

// ExpenseSummaryItem is one category bucket of a monthly expense summary.
type ExpenseSummaryItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_summary_items_owner_month_category" json:"owner_id"`
	Month      string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_summary_items_owner_month_category" json:"month"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_summary_items_owner_month_category" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (si *ExpenseSummaryItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}

	now := time.Now()
	if si.CreatedAt.IsZero() {
		si.CreatedAt = now
	}
	if si.UpdatedAt.IsZero() {
		si.UpdatedAt = now
	}

	return nil
}

func (si *ExpenseSummaryItem) TableName() string {
	return "expense_summary_items"
}
