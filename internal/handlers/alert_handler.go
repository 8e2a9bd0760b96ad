package handlers

import (
	"net/http"

	"finflow/internal/dto"
	"finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/services"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles budget alert endpoints. The direct send path surfaces
// delivery failures, unlike budget-check dispatch which swallows them.
type AlertHandler struct {
	alertService services.AlertServiceInterface
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService services.AlertServiceInterface) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Send dispatches a budget alert email immediately
func (h *AlertHandler) Send(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SendAlertRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	alert, err := h.alertService.SendBudgetAlert(ownerID, &req)
	if err != nil {
		switch {
		case err == services.ErrRecipientRequired:
			return SendError(c, errors.AlertRecipientRequired)
		case alert != nil && !alert.WasDelivered():
			// Recorded but undeliverable; the audit row still exists
			return SendError(c, errors.AlertDeliveryFailed, errors.WithDetails(alert.Error))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, toAlertResponse(*alert))
}

// List returns the owner's alert audit trail
func (h *AlertHandler) List(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	offset := getIntParam(c, "offset", 0)
	limit := getIntParam(c, "limit", 50)

	alerts, total, err := h.alertService.ListAlerts(ownerID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		responses = append(responses, toAlertResponse(alert))
	}

	return c.JSON(http.StatusOK, dto.ListAlertsResponse{
		Alerts: responses,
		Total:  total,
	})
}

func toAlertResponse(alert models.EmailAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        alert.ID.String(),
		Recipient: alert.Recipient,
		Subject:   alert.Subject,
		Budget:    alert.Budget.StringFixed(2),
		Spent:     alert.Spent.StringFixed(2),
		Status:    alert.Status,
		MessageID: alert.MessageID,
		Error:     alert.Error,
		CreatedAt: alert.CreatedAt,
	}
}
