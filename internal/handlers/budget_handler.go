package handlers

import (
	"net/http"

	"finflow/internal/dto"
	"finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles per-month budget endpoints
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Set upserts the budget for a month
func (h *BudgetHandler) Set(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Set(ownerID, &req)
	if err != nil {
		switch err {
		case services.ErrInvalidMonth:
			return SendError(c, errors.BudgetInvalidMonth)
		case services.ErrInvalidAmount, services.ErrNonPositiveBudget:
			return SendError(c, errors.BudgetInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetCurrent returns the budget for the current month
func (h *BudgetHandler) GetCurrent(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budget, err := h.budgetService.GetCurrent(ownerID)
	if err != nil {
		if err == services.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// Check evaluates the month's spending against its budget. An optional
// "month" query parameter defaults to the current month.
func (h *BudgetHandler) Check(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	status, err := h.budgetService.Check(ownerID, c.QueryParam("month"))
	if err != nil {
		if err == services.ErrInvalidMonth {
			return SendError(c, errors.BudgetInvalidMonth)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

func toBudgetResponse(budget *models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:          budget.ID.String(),
		Month:       budget.Month,
		TotalAmount: budget.TotalAmount.StringFixed(2),
	}
}
