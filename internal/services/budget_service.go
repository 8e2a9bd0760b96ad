package services

import (
	"errors"
	"fmt"
	"log/slog"

	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound    = errors.New("budget not found")
	ErrNonPositiveBudget = errors.New("budget amount must be greater than zero")
	ErrInvalidMonth      = errors.New("month must be in YYYY-MM format")
)

// BudgetService handles per-month budget business logic. Check is the single
// place budget alerts originate from; summary reads never trigger one.
type BudgetService struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	summaryRepo  repositories.ExpenseSummaryRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	alertService AlertServiceInterface
	logger       *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	summaryRepo repositories.ExpenseSummaryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	alertService AlertServiceInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		summaryRepo:  summaryRepo,
		userRepo:     userRepo,
		alertService: alertService,
		logger:       logger,
	}
}

// Set upserts the budget for a month. An omitted month means the current
// calendar month.
func (s *BudgetService) Set(ownerID uuid.UUID, req *dto.SetBudgetRequest) (*models.Budget, error) {
	month := req.Month
	if month == "" {
		month = models.CurrentMonth()
	}
	if !models.IsValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	amount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.TotalAmount)
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveBudget
	}

	budget := &models.Budget{
		OwnerID:     ownerID,
		Month:       month,
		TotalAmount: amount,
	}

	if err := s.budgetRepo.Upsert(budget); err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	return budget, nil
}

// GetCurrent returns the budget for the current calendar month
func (s *BudgetService) GetCurrent(ownerID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByMonth(ownerID, models.CurrentMonth())
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// Check compares the month's spending against its budget. Without a budget
// the check is a silent no-op. When spending exceeds the budget an alert is
// dispatched to the owner's email; alert failure never fails the check.
func (s *BudgetService) Check(ownerID uuid.UUID, month string) (*dto.BudgetStatusResponse, error) {
	if month == "" {
		month = models.CurrentMonth()
	}
	if !models.IsValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	budget, err := s.budgetRepo.GetByMonth(ownerID, month)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return &dto.BudgetStatusResponse{Checked: false}, nil
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	spent := decimal.Zero
	summary, err := s.summaryRepo.GetByMonth(ownerID, month)
	if err != nil && !errors.Is(err, repositories.ErrExpenseSummaryNotFound) {
		return nil, fmt.Errorf("failed to get expense summary: %w", err)
	}
	if summary != nil {
		spent = summary.TotalExpense
	}

	remaining := budget.TotalAmount.Sub(spent)
	exceeded := spent.GreaterThan(budget.TotalAmount)

	if exceeded {
		s.dispatchAlert(ownerID, budget.TotalAmount, spent)
	}

	return &dto.BudgetStatusResponse{
		Checked:   true,
		Month:     month,
		Budget:    budget.TotalAmount.StringFixed(2),
		Spent:     spent.StringFixed(2),
		Remaining: remaining.StringFixed(2),
		Exceeded:  exceeded,
	}, nil
}

// dispatchAlert sends the overrun notification best-effort. Errors are logged
// and swallowed; the budget check result stands either way.
func (s *BudgetService) dispatchAlert(ownerID uuid.UUID, budget, spent decimal.Decimal) {
	user, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		s.logger.Error("failed to resolve alert recipient",
			"error", err,
			"owner_id", ownerID)
		return
	}

	if _, err := s.alertService.SendBudgetAlert(ownerID, &dto.SendAlertRequest{
		Email:  user.Email,
		Budget: budget.StringFixed(2),
		Spent:  spent.StringFixed(2),
	}); err != nil {
		s.logger.Warn("budget alert dispatch failed",
			"error", err,
			"owner_id", ownerID)
	}
}
