package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finflow/internal/models"
	"finflow/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryDuplicate = errors.New("category with this name already exists")
	ErrCategoryInUse     = errors.New("category is referenced by existing entries")
	ErrCategoryNameBlank = errors.New("category name cannot be blank")
)

// CategoryService handles category business logic. A brand-new user's first
// list call seeds the default category set.
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	entryRepo    repositories.EntryRepositoryInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	entryRepo repositories.EntryRepositoryInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
		logger:       logger,
	}
}

// List returns the owner's categories, seeding the defaults exactly once for
// a user who has none yet.
func (s *CategoryService) List(ownerID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) > 0 {
		return categories, nil
	}

	seeded, didSeed, err := s.categoryRepo.SeedDefaults(ownerID, models.DefaultCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}
	if didSeed {
		s.logger.Info("seeded default categories", "owner_id", ownerID, "count", len(seeded))
	}

	return seeded, nil
}

// Create adds a category; names are unique per owner, case-insensitively.
func (s *CategoryService) Create(ownerID uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameBlank
	}

	existing, err := s.categoryRepo.GetByName(ownerID, name)
	if err != nil && !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryDuplicate
	}

	category := &models.Category{
		OwnerID: ownerID,
		Name:    name,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// Delete removes a category unless entries still reference it.
func (s *CategoryService) Delete(ownerID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ownerID, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	count, err := s.entryRepo.CountByCategory(ownerID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category entries: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ownerID, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
