package dto

import "time"

// SendAlertRequest triggers a budget alert email directly. Subject and
// message fall back to the configured defaults when empty.
type SendAlertRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"omitempty,max=5000"`
	Budget  string `json:"budget" validate:"required"`
	Spent   string `json:"spent" validate:"required"`
}

// AlertResponse is one row of the alert audit trail.
type AlertResponse struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Budget    string    `json:"budget"`
	Spent     string    `json:"spent"`
	Status    string    `json:"status"`
	MessageID string    `json:"messageId,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListAlertsResponse wraps the alert audit trail listing.
type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int64           `json:"total"`
}
