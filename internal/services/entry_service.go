package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrNegativeAmount  = errors.New("entry amount must not be negative")
	ErrUnknownCategory = errors.New("entry category does not exist")
)

// EntryService handles income/expense entry business logic. Every expense
// mutation keeps the monthly summary in step through the repository's
// transactional write paths, and then re-checks the month's budget
// best-effort.
type EntryService struct {
	entryRepo     repositories.EntryRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	budgetService BudgetServiceInterface
	metrics       MetricsRecorderInterface
	logger        *slog.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(
	entryRepo repositories.EntryRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetService BudgetServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) EntryServiceInterface {
	return &EntryService{
		entryRepo:     entryRepo,
		categoryRepo:  categoryRepo,
		budgetService: budgetService,
		metrics:       metrics,
		logger:        logger,
	}
}

// Create validates and persists a new entry. Expense entries increment the
// (owner, month) summary atomically in the same transaction, after which the
// month's budget is checked; budget-check failure never fails the create.
func (s *EntryService) Create(ownerID uuid.UUID, req *dto.CreateEntryRequest) (*models.Entry, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrUnknownCategory
	}

	category, err := s.resolveCategory(ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		OwnerID:     ownerID,
		Type:        req.Type,
		Amount:      amount,
		CategoryID:  category.ID,
		Description: req.Description,
		Date:        date,
	}

	if err := s.entryRepo.CreateWithSummary(entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	entry.Category = *category

	s.metrics.IncrementCounter("entry_created", map[string]string{"type": entry.Type})

	if entry.IsExpense() {
		s.checkBudget(ownerID, entry.Month())
	}

	return entry, nil
}

// List returns the owner's entries, newest first, with optional filters
func (s *EntryService) List(ownerID uuid.UUID, filters models.EntryFilters) ([]models.Entry, int64, error) {
	filters.OwnerID = ownerID
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	entries, total, err := s.entryRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, total, nil
}

// GetByID returns one entry; a foreign owner's entry is indistinguishable
// from a missing one.
func (s *EntryService) GetByID(ownerID, entryID uuid.UUID) (*models.Entry, error) {
	entry, err := s.entryRepo.GetByID(ownerID, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// Update patches an entry. Changes that move expense money between summary
// buckets (amount, category, date, type) are applied as a decrement of the
// old bucket and an increment of the new one in a single transaction; the
// budget check then re-runs for the affected month.
func (s *EntryService) Update(ownerID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.Entry, error) {
	old, err := s.entryRepo.GetByID(ownerID, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	updated := *old

	if req.Type != "" {
		updated.Type = req.Type
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
		}
		if amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		updated.Amount = amount
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, ErrUnknownCategory
		}
		category, err := s.resolveCategory(ownerID, categoryID)
		if err != nil {
			return nil, err
		}
		updated.CategoryID = category.ID
		updated.Category = *category
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != "" {
		date, err := time.Parse(models.DateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updated.Date = date
	}

	if err := s.entryRepo.UpdateWithSummary(old, &updated); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	if old.IsExpense() {
		s.checkBudget(ownerID, old.Month())
	}
	if updated.IsExpense() && updated.Month() != old.Month() {
		s.checkBudget(ownerID, updated.Month())
	}

	return &updated, nil
}

// Delete removes an entry and reverses its summary contribution
func (s *EntryService) Delete(ownerID, entryID uuid.UUID) error {
	entry, err := s.entryRepo.DeleteWithSummary(ownerID, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if entry.IsExpense() {
		s.checkBudget(ownerID, entry.Month())
	}

	return nil
}

func (s *EntryService) resolveCategory(ownerID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ownerID, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	return category, nil
}

// checkBudget runs the month's budget check best-effort. The mutation that
// triggered it has already committed; a failed check is logged, not surfaced.
func (s *EntryService) checkBudget(ownerID uuid.UUID, month string) {
	if _, err := s.budgetService.Check(ownerID, month); err != nil {
		s.logger.Warn("budget check failed after entry mutation",
			"error", err,
			"owner_id", ownerID,
			"month", month)
	}
}
