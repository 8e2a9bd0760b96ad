package repositories

import (
	"time"

	"finflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
}

// RefreshTokenRepositoryInterface defines the contract for refresh token storage
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(id uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for the token blacklist
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

// AuditLogRepositoryInterface defines the contract for security audit records
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository
// operations. All lookups are owner-scoped.
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(ownerID, id uuid.UUID) (*models.Category, error)
	GetByName(ownerID uuid.UUID, name string) (*models.Category, error)
	ListByOwner(ownerID uuid.UUID) ([]models.Category, error)
	// SeedDefaults inserts the given names for the owner if and only if the
	// owner still has zero categories; it re-checks emptiness inside a
	// transaction so concurrent first requests seed exactly once.
	SeedDefaults(ownerID uuid.UUID, names []string) ([]models.Category, bool, error)
	Delete(ownerID, id uuid.UUID) error
}

// EntryRepositoryInterface defines the contract for entry repository
// operations. The *WithSummary variants keep the per-month expense summary in
// step with the entry set inside a single database transaction, using atomic
// increments rather than read-modify-write.
type EntryRepositoryInterface interface {
	CreateWithSummary(entry *models.Entry) error
	GetByID(ownerID, id uuid.UUID) (*models.Entry, error)
	GetWithFilters(filters models.EntryFilters) ([]models.Entry, int64, error)
	ListByOwner(ownerID uuid.UUID) ([]models.Entry, error)
	UpdateWithSummary(old, updated *models.Entry) error
	DeleteWithSummary(ownerID, id uuid.UUID) (*models.Entry, error)
	CountByCategory(ownerID, categoryID uuid.UUID) (int64, error)
	GetCategoryTotals(ownerID uuid.UUID, entryType string, startDate, endDate *time.Time) ([]models.ComparisonRow, error)
}

// ExpenseSummaryRepositoryInterface defines the contract for the denormalized
// per-month expense totals.
type ExpenseSummaryRepositoryInterface interface {
	GetByMonth(ownerID uuid.UUID, month string) (*models.ExpenseSummary, error)
	GetItemsByMonth(ownerID uuid.UUID, month string) ([]models.ExpenseSummaryItem, error)
	GetByMonthRange(ownerID uuid.UUID, startMonth, endMonth string) ([]models.ExpenseSummary, error)
	GetItemsByMonthRange(ownerID uuid.UUID, startMonth, endMonth string) ([]models.ExpenseSummaryItem, error)
	ApplyDelta(ownerID uuid.UUID, month string, categoryID uuid.UUID, amount decimal.Decimal) error
}

// BudgetRepositoryInterface defines the contract for per-month budgets
type BudgetRepositoryInterface interface {
	Upsert(budget *models.Budget) error
	GetByMonth(ownerID uuid.UUID, month string) (*models.Budget, error)
}

// EmailAlertRepositoryInterface defines the contract for the append-only
// alert audit trail
type EmailAlertRepositoryInterface interface {
	Create(alert *models.EmailAlert) error
	ListByOwner(ownerID uuid.UUID, offset, limit int) ([]models.EmailAlert, int64, error)
}
