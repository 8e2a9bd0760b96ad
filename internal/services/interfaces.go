package services

import (
	"time"

	"finflow/internal/dto"
	"finflow/internal/models"

	"github.com/google/uuid"
)

// CategoryServiceInterface defines category business operations. Every
// operation is scoped to the owning user.
type CategoryServiceInterface interface {
	List(ownerID uuid.UUID) ([]models.Category, error)
	Create(ownerID uuid.UUID, name string) (*models.Category, error)
	Delete(ownerID, categoryID uuid.UUID) error
}

// EntryServiceInterface defines income/expense entry business operations
type EntryServiceInterface interface {
	Create(ownerID uuid.UUID, req *dto.CreateEntryRequest) (*models.Entry, error)
	List(ownerID uuid.UUID, filters models.EntryFilters) ([]models.Entry, int64, error)
	GetByID(ownerID, entryID uuid.UUID) (*models.Entry, error)
	Update(ownerID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.Entry, error)
	Delete(ownerID, entryID uuid.UUID) error
}

// BudgetServiceInterface defines per-month budget operations. Check evaluates
// the owner's spending against the month's budget and dispatches an alert
// when the budget is exceeded.
type BudgetServiceInterface interface {
	Set(ownerID uuid.UUID, req *dto.SetBudgetRequest) (*models.Budget, error)
	GetCurrent(ownerID uuid.UUID) (*models.Budget, error)
	Check(ownerID uuid.UUID, month string) (*dto.BudgetStatusResponse, error)
}

// AlertServiceInterface defines budget alert dispatch. Every attempt is
// recorded whether or not delivery succeeds.
type AlertServiceInterface interface {
	SendBudgetAlert(ownerID uuid.UUID, req *dto.SendAlertRequest) (*models.EmailAlert, error)
	ListAlerts(ownerID uuid.UUID, offset, limit int) ([]models.EmailAlert, int64, error)
}

// StatsServiceInterface defines aggregation reads over an owner's entries
// and expense summaries
type StatsServiceInterface interface {
	GetStats(ownerID uuid.UUID) (*dto.StatsResponse, error)
	GetExpenseSummary(ownerID uuid.UUID, startDate, endDate time.Time) (*dto.ExpenseSummaryResponse, error)
	GetComparison(ownerID uuid.UUID, period string) (*dto.ComparisonResponse, error)
}

// MailTransport abstracts the SMTP delivery so alert logic can be tested
// without a mail server
type MailTransport interface {
	Send(msg *MailMessage) (messageID string, err error)
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
	GetProfile(userID uuid.UUID) (*models.User, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// MetricsRecorderInterface decouples services from the concrete metrics
// backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
