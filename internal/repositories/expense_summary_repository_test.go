package repositories

import (
	"testing"

	"finflow/internal/database"
	"finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestExpenseSummaryRepository(t *testing.T) {
	suite.Run(t, new(ExpenseSummaryRepositorySuite))
}

type ExpenseSummaryRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     ExpenseSummaryRepositoryInterface
	owner    *models.User
	category *models.Category
}

func (s *ExpenseSummaryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewExpenseSummaryRepository(s.db.DB)
	s.owner = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.category = database.CreateTestCategory(s.T(), s.db, s.owner, "Groceries")
}

func (s *ExpenseSummaryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ExpenseSummaryRepositorySuite) TestApplyDelta_CreatesThenIncrements() {
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("100.50")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("24.50")))

	summary, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.True(summary.TotalExpense.Equal(decimal.RequireFromString("125.00")))

	items, err := s.repo.GetItemsByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.Require().Len(items, 1)
	s.True(items[0].Amount.Equal(decimal.RequireFromString("125.00")))
	s.Equal("Groceries", items[0].Category.Name)
}

func (s *ExpenseSummaryRepositorySuite) TestApplyDelta_NegativeDeltaReverses() {
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("100")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("-100")))

	summary, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.True(summary.TotalExpense.IsZero())
}

func (s *ExpenseSummaryRepositorySuite) TestApplyDelta_SeparateCategoryBuckets() {
	rent := database.CreateTestCategory(s.T(), s.db, s.owner, "Rent")

	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("150")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", rent.ID, decimal.RequireFromString("800")))

	summary, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.True(summary.TotalExpense.Equal(decimal.RequireFromString("950")))

	items, err := s.repo.GetItemsByMonth(s.owner.ID, "2026-08")
	s.NoError(err)
	s.Len(items, 2)
}

func (s *ExpenseSummaryRepositorySuite) TestGetByMonth_NotFound() {
	_, err := s.repo.GetByMonth(s.owner.ID, "2026-08")
	s.Equal(ErrExpenseSummaryNotFound, err)
}

func (s *ExpenseSummaryRepositorySuite) TestGetByMonthRange() {
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-06", s.category.ID, decimal.RequireFromString("10")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-07", s.category.ID, decimal.RequireFromString("20")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("30")))

	summaries, err := s.repo.GetByMonthRange(s.owner.ID, "2026-06", "2026-07")
	s.NoError(err)
	s.Require().Len(summaries, 2)

	// Month ascending
	s.Equal("2026-06", summaries[0].Month)
	s.Equal("2026-07", summaries[1].Month)
}

func (s *ExpenseSummaryRepositorySuite) TestGetItemsByMonthRange() {
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-06", s.category.ID, decimal.RequireFromString("10")))
	s.NoError(s.repo.ApplyDelta(s.owner.ID, "2026-08", s.category.ID, decimal.RequireFromString("30")))

	items, err := s.repo.GetItemsByMonthRange(s.owner.ID, "2026-06", "2026-07")
	s.NoError(err)
	s.Require().Len(items, 1)
	s.Equal("2026-06", items[0].Month)
}
