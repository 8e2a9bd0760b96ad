package repositories

import (
	"testing"

	"finflow/internal/database"
	"finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestBudgetRepository(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

type BudgetRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  BudgetRepositoryInterface
	owner *models.User
}

func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.owner = database.CreateTestUser(s.T(), s.db, "owner@example.com")
}

func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositorySuite) TestUpsert_InsertThenOverwrite() {
	s.NoError(s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "2026-08",
		TotalAmount: decimal.RequireFromString("1000.00"),
	}))

	s.NoError(s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "2026-08",
		TotalAmount: decimal.RequireFromString("1500.00"),
	}))

	budget, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.True(budget.TotalAmount.Equal(decimal.RequireFromString("1500.00")))

	var count int64
	s.NoError(s.db.Model(&models.Budget{}).Where("owner_id = ?", s.owner.ID).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *BudgetRepositorySuite) TestUpsert_DistinctMonthsCoexist() {
	s.NoError(s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "2026-07",
		TotalAmount: decimal.RequireFromString("900"),
	}))
	s.NoError(s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "2026-08",
		TotalAmount: decimal.RequireFromString("1100"),
	}))

	july, err := s.repo.GetByMonth(s.owner.ID, "2026-07")
	s.NoError(err)
	s.True(july.TotalAmount.Equal(decimal.RequireFromString("900")))

	august, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.True(august.TotalAmount.Equal(decimal.RequireFromString("1100")))
}

func (s *BudgetRepositorySuite) TestUpsert_RejectsInvalidBudget() {
	err := s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "08-2026",
		TotalAmount: decimal.RequireFromString("1000"),
	})
	s.ErrorIs(err, models.ErrInvalidMonth)
}

func (s *BudgetRepositorySuite) TestGetByMonth_NotFound() {
	_, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.Equal(ErrBudgetNotFound, err)
}

func (s *BudgetRepositorySuite) TestGetByMonth_OwnerScoped() {
	s.NoError(s.repo.Upsert(&models.Budget{
		OwnerID:     s.owner.ID,
		Month:       "2026-08",
		TotalAmount: decimal.RequireFromString("1000"),
	}))

	stranger := database.CreateTestUser(s.T(), s.db, "stranger@example.com")
	_, err := s.repo.GetByMonth(stranger.ID, "2026-08")
	s.Equal(ErrBudgetNotFound, err)
}
