package repositories

import (
	"errors"
	"fmt"
	"time"

	"finflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

// Upsert stores the budget for (owner, month), overwriting the amount when a
// row already exists instead of creating a duplicate.
func (r *budgetRepository) Upsert(budget *models.Budget) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_amount": budget.TotalAmount,
			"updated_at":   time.Now(),
		}),
	}).Create(budget).Error; err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

func (r *budgetRepository) GetByMonth(ownerID uuid.UUID, month string) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("owner_id = ? AND month = ?", ownerID, month).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}
