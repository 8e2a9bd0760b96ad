package repositories

import (
	"errors"
	"fmt"
	"time"

	"finflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrExpenseSummaryNotFound = errors.New("expense summary not found")
)

type expenseSummaryRepository struct {
	db *gorm.DB
}

// NewExpenseSummaryRepository creates a new expense summary repository
func NewExpenseSummaryRepository(db *gorm.DB) ExpenseSummaryRepositoryInterface {
	return &expenseSummaryRepository{db: db}
}

func (r *expenseSummaryRepository) GetByMonth(ownerID uuid.UUID, month string) (*models.ExpenseSummary, error) {
	var summary models.ExpenseSummary
	if err := r.db.Where("owner_id = ? AND month = ?", ownerID, month).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get expense summary: %w", err)
	}
	return &summary, nil
}

func (r *expenseSummaryRepository) GetItemsByMonth(ownerID uuid.UUID, month string) ([]models.ExpenseSummaryItem, error) {
	var items []models.ExpenseSummaryItem
	if err := r.db.Preload("Category").
		Where("owner_id = ? AND month = ?", ownerID, month).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense summary items: %w", err)
	}
	return items, nil
}

func (r *expenseSummaryRepository) GetByMonthRange(ownerID uuid.UUID, startMonth, endMonth string) ([]models.ExpenseSummary, error) {
	var summaries []models.ExpenseSummary
	if err := r.db.Where("owner_id = ? AND month BETWEEN ? AND ?", ownerID, startMonth, endMonth).
		Order("month ASC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense summaries: %w", err)
	}
	return summaries, nil
}

func (r *expenseSummaryRepository) GetItemsByMonthRange(ownerID uuid.UUID, startMonth, endMonth string) ([]models.ExpenseSummaryItem, error) {
	var items []models.ExpenseSummaryItem
	if err := r.db.Preload("Category").
		Where("owner_id = ? AND month BETWEEN ? AND ?", ownerID, startMonth, endMonth).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense summary items: %w", err)
	}
	return items, nil
}

// ApplyDelta adds amount (which may be negative) to both the monthly total
// and the category bucket.
func (r *expenseSummaryRepository) ApplyDelta(ownerID uuid.UUID, month string, categoryID uuid.UUID, amount decimal.Decimal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applySummaryDelta(tx, ownerID, month, categoryID, amount)
	})
}

// applySummaryDelta upserts the (owner, month) summary row and the
// (owner, month, category) item row, incrementing both with a single
// conditional update expression each. No read-modify-write: concurrent entry
// writes for the same month cannot lose updates.
//
// Both rows change inside the caller's transaction, which is what keeps the
// total equal to the sum of the category buckets.
func applySummaryDelta(tx *gorm.DB, ownerID uuid.UUID, month string, categoryID uuid.UUID, amount decimal.Decimal) error {
	now := time.Now()

	summary := models.ExpenseSummary{
		OwnerID:      ownerID,
		Month:        month,
		TotalExpense: amount,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_expense": gorm.Expr("total_expense + ?", amount),
			"updated_at":    now,
		}),
	}).Create(&summary).Error; err != nil {
		return fmt.Errorf("failed to upsert expense summary: %w", err)
	}

	item := models.ExpenseSummaryItem{
		OwnerID:    ownerID,
		Month:      month,
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "month"}, {Name: "category_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": now,
		}),
	}).Create(&item).Error; err != nil {
		return fmt.Errorf("failed to upsert expense summary item: %w", err)
	}

	return nil
}
