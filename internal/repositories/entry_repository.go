package repositories

import (
	"errors"
	"fmt"
	"time"

	"finflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) EntryRepositoryInterface {
	return &entryRepository{db: db}
}

// CreateWithSummary persists the entry and, for expenses, folds its amount
// into the per-month summary in the same transaction.
func (r *entryRepository) CreateWithSummary(entry *models.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		if entry.IsExpense() {
			if err := applySummaryDelta(tx, entry.OwnerID, entry.Month(), entry.CategoryID, entry.Amount); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID loads an entry scoped to its owner. A foreign owner's id yields the
// same ErrEntryNotFound as an id that never existed.
func (r *entryRepository) GetByID(ownerID, id uuid.UUID) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.Preload("Category").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}

func (r *entryRepository) GetWithFilters(filters models.EntryFilters) ([]models.Entry, int64, error) {
	var entries []models.Entry
	var total int64

	query := r.db.Model(&models.Entry{}).Where("owner_id = ?", filters.OwnerID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Offset(filters.Offset).Limit(filters.Limit)
	}

	if err := query.Preload("Category").
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get entries: %w", err)
	}

	return entries, total, nil
}

func (r *entryRepository) ListByOwner(ownerID uuid.UUID) ([]models.Entry, error) {
	var entries []models.Entry
	if err := r.db.Preload("Category").
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpdateWithSummary saves the updated entry and re-derives the affected
// summary buckets: the old expense amount leaves its bucket, the new one
// enters its own. Both sides happen in one transaction.
func (r *entryRepository) UpdateWithSummary(old, updated *models.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Model carries the populated entry so the update hooks validate
		// the new values rather than a zero-value receiver.
		result := tx.Model(updated).
			Where("id = ? AND owner_id = ?", updated.ID, updated.OwnerID).
			Updates(map[string]interface{}{
				"type":        updated.Type,
				"amount":      updated.Amount,
				"category_id": updated.CategoryID,
				"description": updated.Description,
				"date":        updated.Date,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update entry: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrEntryNotFound
		}

		sameBucket := old.IsExpense() && updated.IsExpense() &&
			old.Month() == updated.Month() &&
			old.CategoryID == updated.CategoryID &&
			old.Amount.Equal(updated.Amount)
		if sameBucket {
			return nil
		}

		if old.IsExpense() {
			if err := applySummaryDelta(tx, old.OwnerID, old.Month(), old.CategoryID, old.Amount.Neg()); err != nil {
				return err
			}
		}
		if updated.IsExpense() {
			if err := applySummaryDelta(tx, updated.OwnerID, updated.Month(), updated.CategoryID, updated.Amount); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteWithSummary removes the entry and backs its amount out of the
// summary. Returns the deleted entry so callers can report the affected
// month.
func (r *entryRepository) DeleteWithSummary(ownerID, id uuid.UUID) (*models.Entry, error) {
	var entry models.Entry

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("failed to get entry: %w", err)
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		if entry.IsExpense() {
			if err := applySummaryDelta(tx, entry.OwnerID, entry.Month(), entry.CategoryID, entry.Amount.Neg()); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *entryRepository) CountByCategory(ownerID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Entry{}).
		Where("owner_id = ? AND category_id = ?", ownerID, categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entries by category: %w", err)
	}
	return count, nil
}

// GetCategoryTotals runs the grouped-sum aggregation behind the
// revenue/expense comparison views.
func (r *entryRepository) GetCategoryTotals(ownerID uuid.UUID, entryType string, startDate, endDate *time.Time) ([]models.ComparisonRow, error) {
	var rows []models.ComparisonRow

	query := r.db.Model(&models.Entry{}).
		Select("entries.category_id AS category_id, categories.name AS category_name, entries.type AS type, COALESCE(SUM(entries.amount), 0) AS total").
		Joins("JOIN categories ON categories.id = entries.category_id").
		Where("entries.owner_id = ?", ownerID).
		Group("entries.category_id, categories.name, entries.type").
		Order("total DESC")

	if entryType != "" {
		query = query.Where("entries.type = ?", entryType)
	}
	if startDate != nil {
		query = query.Where("entries.date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("entries.date <= ?", *endDate)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	return rows, nil
}
