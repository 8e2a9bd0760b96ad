package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finflow/internal/config"
	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrRecipientRequired = errors.New("alert recipient is required")
	ErrAlertDelivery     = errors.New("alert delivery failed")
	ErrInvalidAmount     = errors.New("invalid decimal amount")
)

// AlertService composes and dispatches budget alert emails. Every attempt,
// delivered or not, is appended to the email_alerts audit trail before the
// delivery outcome is reported to the caller.
type AlertService struct {
	alertRepo repositories.EmailAlertRepositoryInterface
	transport MailTransport
	cfg       config.AlertConfig
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(
	alertRepo repositories.EmailAlertRepositoryInterface,
	transport MailTransport,
	cfg config.AlertConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AlertServiceInterface {
	return &AlertService{
		alertRepo: alertRepo,
		transport: transport,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
	}
}

// SendBudgetAlert composes and sends one budget overrun notification. The
// returned EmailAlert carries the delivery status; the error is non-nil only
// when delivery (or recording) failed, so callers choose whether to surface
// or swallow it.
func (s *AlertService) SendBudgetAlert(ownerID uuid.UUID, req *dto.SendAlertRequest) (*models.EmailAlert, error) {
	recipient := strings.TrimSpace(req.Email)
	if recipient == "" {
		return nil, ErrRecipientRequired
	}

	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		return nil, fmt.Errorf("%w: budget %q", ErrInvalidAmount, req.Budget)
	}
	spent, err := decimal.NewFromString(req.Spent)
	if err != nil {
		return nil, fmt.Errorf("%w: spent %q", ErrInvalidAmount, req.Spent)
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = s.cfg.DefaultSubject
	}

	body := strings.TrimSpace(req.Message)
	if body == "" {
		body = s.composeBody(budget, spent)
	}

	alert := &models.EmailAlert{
		OwnerID:   ownerID,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Budget:    budget,
		Spent:     spent,
	}

	messageID, sendErr := s.transport.Send(&MailMessage{
		To:      recipient,
		Subject: subject,
		Body:    body,
	})

	if sendErr != nil {
		alert.Status = models.AlertStatusFailed
		alert.Error = sendErr.Error()
		s.metrics.IncrementCounter("alert_dispatched", map[string]string{"status": "failed"})
		s.logger.Error("budget alert delivery failed",
			"error", sendErr,
			"owner_id", ownerID,
			"recipient", recipient)
	} else {
		alert.Status = models.AlertStatusSent
		alert.MessageID = messageID
		s.metrics.IncrementCounter("alert_dispatched", map[string]string{"status": "sent"})
	}

	if err := s.alertRepo.Create(alert); err != nil {
		return nil, fmt.Errorf("failed to record email alert: %w", err)
	}

	if sendErr != nil {
		return alert, fmt.Errorf("%w: %v", ErrAlertDelivery, sendErr)
	}

	return alert, nil
}

// ListAlerts returns the owner's alert audit trail, newest first
func (s *AlertService) ListAlerts(ownerID uuid.UUID, offset, limit int) ([]models.EmailAlert, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.alertRepo.ListByOwner(ownerID, offset, limit)
}

func (s *AlertService) composeBody(budget, spent decimal.Decimal) string {
	over := spent.Sub(budget)
	return fmt.Sprintf(
		"You have exceeded your monthly budget.\n\nBudget: $%s\nSpent: $%s\nOver budget by: $%s\n",
		budget.StringFixed(2), spent.StringFixed(2), over.StringFixed(2))
}
