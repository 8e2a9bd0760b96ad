package services_test

import (
	"log/slog"
	"testing"
	"time"

	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"
	"finflow/internal/repositories/repository_mocks"
	"finflow/internal/services"
	"finflow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EntryServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	entryRepo     *repository_mocks.MockEntryRepositoryInterface
	categoryRepo  *repository_mocks.MockCategoryRepositoryInterface
	budgetService *service_mocks.MockBudgetServiceInterface
	metrics       *service_mocks.MockMetricsRecorderInterface
	entryService  services.EntryServiceInterface
	ownerID       uuid.UUID
	category      *models.Category
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.entryRepo = repository_mocks.NewMockEntryRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.budgetService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.entryService = services.NewEntryService(s.entryRepo, s.categoryRepo, s.budgetService, s.metrics, slog.Default())
	s.ownerID = uuid.New()
	s.category = &models.Category{
		ID:      uuid.New(),
		OwnerID: s.ownerID,
		Name:    "Groceries",
	}
}

func (s *EntryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestEntryServiceSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}

func (s *EntryServiceTestSuite) TestCreate_ExpenseChecksBudget() {
	req := &dto.CreateEntryRequest{
		Type:        models.EntryTypeExpense,
		Amount:      "42.50",
		CategoryID:  s.category.ID.String(),
		Description: "weekly shop",
		Date:        "2026-08-15",
	}

	s.categoryRepo.EXPECT().GetByID(s.ownerID, s.category.ID).Return(s.category, nil).Times(1)
	s.entryRepo.EXPECT().CreateWithSummary(gomock.Any()).DoAndReturn(func(entry *models.Entry) error {
		s.Equal(s.ownerID, entry.OwnerID)
		s.Equal(models.EntryTypeExpense, entry.Type)
		s.True(entry.Amount.Equal(decimal.RequireFromString("42.50")))
		s.Equal(s.category.ID, entry.CategoryID)
		return nil
	}).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-08").Return(&dto.BudgetStatusResponse{Checked: true}, nil).Times(1)

	entry, err := s.entryService.Create(s.ownerID, req)

	s.NoError(err)
	s.NotNil(entry)
	s.Equal("Groceries", entry.Category.Name)
	s.Equal("2026-08", entry.Month())
}

func (s *EntryServiceTestSuite) TestCreate_IncomeSkipsBudgetCheck() {
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeIncome,
		Amount:     "2500",
		CategoryID: s.category.ID.String(),
		Date:       "2026-08-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.ownerID, s.category.ID).Return(s.category, nil).Times(1)
	s.entryRepo.EXPECT().CreateWithSummary(gomock.Any()).Return(nil).Times(1)
	// no budgetService.Check expectation: income must not trigger one

	entry, err := s.entryService.Create(s.ownerID, req)

	s.NoError(err)
	s.Equal(models.EntryTypeIncome, entry.Type)
}

func (s *EntryServiceTestSuite) TestCreate_NegativeAmount() {
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeExpense,
		Amount:     "-5",
		CategoryID: s.category.ID.String(),
		Date:       "2026-08-15",
	}

	entry, err := s.entryService.Create(s.ownerID, req)
	s.Equal(services.ErrNegativeAmount, err)
	s.Nil(entry)
}

func (s *EntryServiceTestSuite) TestCreate_MalformedAmount() {
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeExpense,
		Amount:     "many",
		CategoryID: s.category.ID.String(),
		Date:       "2026-08-15",
	}

	entry, err := s.entryService.Create(s.ownerID, req)
	s.ErrorIs(err, services.ErrInvalidAmount)
	s.Nil(entry)
}

func (s *EntryServiceTestSuite) TestCreate_InvalidDate() {
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeExpense,
		Amount:     "10",
		CategoryID: s.category.ID.String(),
		Date:       "15/08/2026",
	}

	entry, err := s.entryService.Create(s.ownerID, req)
	s.Equal(services.ErrInvalidDate, err)
	s.Nil(entry)
}

func (s *EntryServiceTestSuite) TestCreate_UnknownCategory() {
	categoryID := uuid.New()
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeExpense,
		Amount:     "10",
		CategoryID: categoryID.String(),
		Date:       "2026-08-15",
	}

	s.categoryRepo.EXPECT().GetByID(s.ownerID, categoryID).Return(nil, repositories.ErrCategoryNotFound).Times(1)

	entry, err := s.entryService.Create(s.ownerID, req)
	s.Equal(services.ErrUnknownCategory, err)
	s.Nil(entry)
}

func (s *EntryServiceTestSuite) TestList_ClampsLimit() {
	s.entryRepo.EXPECT().GetWithFilters(gomock.Any()).DoAndReturn(
		func(filters models.EntryFilters) ([]models.Entry, int64, error) {
			s.Equal(s.ownerID, filters.OwnerID)
			s.Equal(50, filters.Limit)
			return []models.Entry{}, 0, nil
		}).Times(1)

	_, _, err := s.entryService.List(s.ownerID, models.EntryFilters{Limit: 10000})
	s.NoError(err)
}

func (s *EntryServiceTestSuite) TestGetByID_NotFound() {
	entryID := uuid.New()
	s.entryRepo.EXPECT().GetByID(s.ownerID, entryID).Return(nil, repositories.ErrEntryNotFound).Times(1)

	entry, err := s.entryService.GetByID(s.ownerID, entryID)
	s.Equal(services.ErrEntryNotFound, err)
	s.Nil(entry)
}

func (s *EntryServiceTestSuite) TestUpdate_AmountPatchKeepsOtherFields() {
	entryID := uuid.New()
	old := &models.Entry{
		ID:          entryID,
		OwnerID:     s.ownerID,
		Type:        models.EntryTypeExpense,
		Amount:      decimal.RequireFromString("100"),
		CategoryID:  s.category.ID,
		Description: "rent",
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	s.entryRepo.EXPECT().GetByID(s.ownerID, entryID).Return(old, nil).Times(1)
	s.entryRepo.EXPECT().UpdateWithSummary(old, gomock.Any()).DoAndReturn(
		func(oldEntry, updated *models.Entry) error {
			s.True(updated.Amount.Equal(decimal.RequireFromString("150")))
			s.Equal("rent", updated.Description)
			s.Equal(old.CategoryID, updated.CategoryID)
			return nil
		}).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-08").Return(&dto.BudgetStatusResponse{Checked: true}, nil).Times(1)

	updated, err := s.entryService.Update(s.ownerID, entryID, &dto.UpdateEntryRequest{Amount: "150"})

	s.NoError(err)
	s.True(updated.Amount.Equal(decimal.RequireFromString("150")))
}

func (s *EntryServiceTestSuite) TestUpdate_MonthMoveChecksBothMonths() {
	entryID := uuid.New()
	old := &models.Entry{
		ID:         entryID,
		OwnerID:    s.ownerID,
		Type:       models.EntryTypeExpense,
		Amount:     decimal.RequireFromString("60"),
		CategoryID: s.category.ID,
		Date:       time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}

	s.entryRepo.EXPECT().GetByID(s.ownerID, entryID).Return(old, nil).Times(1)
	s.entryRepo.EXPECT().UpdateWithSummary(old, gomock.Any()).Return(nil).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-07").Return(&dto.BudgetStatusResponse{Checked: true}, nil).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-08").Return(&dto.BudgetStatusResponse{Checked: true}, nil).Times(1)

	_, err := s.entryService.Update(s.ownerID, entryID, &dto.UpdateEntryRequest{Date: "2026-08-01"})
	s.NoError(err)
}

func (s *EntryServiceTestSuite) TestUpdate_NotFound() {
	entryID := uuid.New()
	s.entryRepo.EXPECT().GetByID(s.ownerID, entryID).Return(nil, repositories.ErrEntryNotFound).Times(1)

	updated, err := s.entryService.Update(s.ownerID, entryID, &dto.UpdateEntryRequest{Amount: "10"})
	s.Equal(services.ErrEntryNotFound, err)
	s.Nil(updated)
}

func (s *EntryServiceTestSuite) TestDelete_ExpenseChecksBudget() {
	entryID := uuid.New()
	deleted := &models.Entry{
		ID:      entryID,
		OwnerID: s.ownerID,
		Type:    models.EntryTypeExpense,
		Amount:  decimal.RequireFromString("25"),
		Date:    time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	s.entryRepo.EXPECT().DeleteWithSummary(s.ownerID, entryID).Return(deleted, nil).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-08").Return(&dto.BudgetStatusResponse{Checked: true}, nil).Times(1)

	err := s.entryService.Delete(s.ownerID, entryID)
	s.NoError(err)
}

func (s *EntryServiceTestSuite) TestDelete_NotFound() {
	entryID := uuid.New()
	s.entryRepo.EXPECT().DeleteWithSummary(s.ownerID, entryID).Return(nil, repositories.ErrEntryNotFound).Times(1)

	err := s.entryService.Delete(s.ownerID, entryID)
	s.Equal(services.ErrEntryNotFound, err)
}

func (s *EntryServiceTestSuite) TestCreate_BudgetCheckFailureDoesNotFailCreate() {
	req := &dto.CreateEntryRequest{
		Type:       models.EntryTypeExpense,
		Amount:     "30",
		CategoryID: s.category.ID.String(),
		Date:       "2026-08-15",
	}

	s.categoryRepo.EXPECT().GetByID(s.ownerID, s.category.ID).Return(s.category, nil).Times(1)
	s.entryRepo.EXPECT().CreateWithSummary(gomock.Any()).Return(nil).Times(1)
	s.budgetService.EXPECT().Check(s.ownerID, "2026-08").Return(nil, services.ErrInvalidMonth).Times(1)

	entry, err := s.entryService.Create(s.ownerID, req)
	s.NoError(err)
	s.NotNil(entry)
}
