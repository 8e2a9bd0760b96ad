package handlers

import (
	"net/http"
	"time"

	"finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/services"

	"github.com/labstack/echo/v4"
)

// StatsHandler handles aggregation endpoints: overall stats, period
// comparisons and the expense summary range fold.
type StatsHandler struct {
	statsService services.StatsServiceInterface
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService services.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns the owner's overall aggregation
func (h *StatsHandler) GetStats(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	stats, err := h.statsService.GetStats(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// GetComparison returns per-category income vs expense within a period.
// The "period" query parameter defaults to monthly.
func (h *StatsHandler) GetComparison(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	period := c.QueryParam("period")
	if period == "" {
		period = services.PeriodMonthly
	}

	comparison, err := h.statsService.GetComparison(ownerID, period)
	if err != nil {
		if err == services.ErrInvalidPeriod {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("period must be daily, monthly or yearly"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, comparison)
}

// GetExpenseSummary folds monthly expense summaries over a date range
func (h *StatsHandler) GetExpenseSummary(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	startDate, err := time.Parse(models.DateLayout, c.Param("start"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid start date"))
	}

	endDate, err := time.Parse(models.DateLayout, c.Param("end"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid end date"))
	}

	if endDate.Before(startDate) {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("End date precedes start date"))
	}

	summary, err := h.statsService.GetExpenseSummary(ownerID, startDate, endDate)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}
