package repositories

import (
	"errors"
	"fmt"
	"strings"

	"finflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ownerID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByName resolves a category by its case-insensitive name.
func (r *categoryRepository) GetByName(ownerID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if err := r.db.Where("owner_id = ? AND name_lower = ?", ownerID, nameLower).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) ListByOwner(ownerID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("name_lower ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// SeedDefaults inserts the default names for an owner with zero categories.
// The emptiness check runs again inside the transaction, so two concurrent
// first requests cannot both seed.
func (r *categoryRepository) SeedDefaults(ownerID uuid.UUID, names []string) ([]models.Category, bool, error) {
	var seeded bool
	var categories []models.Category

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("owner_id = ?", ownerID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count categories: %w", err)
		}

		if count > 0 {
			// Another request seeded first; hand back its rows.
			if err := tx.Where("owner_id = ?", ownerID).
				Order("name_lower ASC").
				Find(&categories).Error; err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			return nil
		}

		defaults := make([]models.Category, 0, len(names))
		for _, name := range names {
			defaults = append(defaults, models.Category{
				OwnerID: ownerID,
				Name:    name,
				Seeded:  true,
			})
		}

		if err := tx.Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to seed default categories: %w", err)
		}

		seeded = true
		categories = defaults
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return categories, seeded, nil
}

// Delete removes an owner's category. Callers must reject the delete while
// entries still reference the category.
func (r *categoryRepository) Delete(ownerID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
