package repositories

import (
	"errors"
	"fmt"
	"time"

	"finflow/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBlacklistedTokenNotFound = errors.New("blacklisted token not found")
)

type blacklistedTokenRepository struct {
	db *gorm.DB
}

// NewBlacklistedTokenRepository creates a new blacklisted token repository
func NewBlacklistedTokenRepository(db *gorm.DB) BlacklistedTokenRepositoryInterface {
	return &blacklistedTokenRepository{db: db}
}

func (r *blacklistedTokenRepository) Create(token *models.BlacklistedToken) error {
	if token.BlacklistedAt.IsZero() {
		token.BlacklistedAt = time.Now()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *blacklistedTokenRepository) GetByJTI(jti string) (*models.BlacklistedToken, error) {
	var token models.BlacklistedToken
	if err := r.db.Where("jti = ?", jti).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlacklistedTokenNotFound
		}
		return nil, fmt.Errorf("failed to get blacklisted token: %w", err)
	}
	return &token, nil
}

func (r *blacklistedTokenRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired blacklisted tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
