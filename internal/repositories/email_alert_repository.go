package repositories

import (
	"fmt"

	"finflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type emailAlertRepository struct {
	db *gorm.DB
}

// NewEmailAlertRepository creates a new email alert repository
func NewEmailAlertRepository(db *gorm.DB) EmailAlertRepositoryInterface {
	return &emailAlertRepository{db: db}
}

// Create appends one attempt to the audit trail. Alerts are never updated or
// deleted.
func (r *emailAlertRepository) Create(alert *models.EmailAlert) error {
	if err := r.db.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to record email alert: %w", err)
	}
	return nil
}

func (r *emailAlertRepository) ListByOwner(ownerID uuid.UUID, offset, limit int) ([]models.EmailAlert, int64, error) {
	var alerts []models.EmailAlert
	var total int64

	query := r.db.Model(&models.EmailAlert{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count email alerts: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list email alerts: %w", err)
	}

	return alerts, total, nil
}
