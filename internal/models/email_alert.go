package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AlertStatusSent   = "sent"
	AlertStatusFailed = "failed"
)

// EmailAlert is the append-only audit record of every attempted budget
// notification, successful or not. Rows are never updated or deleted; the
// table is the alerting system's durable log.
type EmailAlert struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Recipient string          `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject   string          `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string          `gorm:"type:text" json:"body"`
	Budget    decimal.Decimal `gorm:"type:decimal(15,2)" json:"budget"`
	Spent     decimal.Decimal `gorm:"type:decimal(15,2)" json:"spent"`
	Status    string          `gorm:"type:varchar(10);not null;index" json:"status"`
	MessageID string          `gorm:"type:varchar(255)" json:"message_id,omitempty"`
	Error     string          `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
}

func (ea *EmailAlert) BeforeCreate(tx *gorm.DB) error {
	if ea.ID == uuid.Nil {
		ea.ID = uuid.New()
	}
	if ea.CreatedAt.IsZero() {
		ea.CreatedAt = time.Now()
	}
	return nil
}

func (ea *EmailAlert) WasDelivered() bool {
	return ea.Status == AlertStatusSent
}

func (ea *EmailAlert) TableName() string {
	return "email_alerts"
}
