package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PeriodDaily   = "daily"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"

	monthlyTrendMonths = 6
	weeklyTrendWeeks   = 8
)

var ErrInvalidPeriod = errors.New("period must be daily, monthly or yearly")

// StatsService computes aggregation reads. GetStats folds the owner's entry
// set in one pass; GetExpenseSummary reads only the denormalized summary
// tables and never touches individual entries.
type StatsService struct {
	entryRepo    repositories.EntryRepositoryInterface
	summaryRepo  repositories.ExpenseSummaryRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	entryRepo repositories.EntryRepositoryInterface,
	summaryRepo repositories.ExpenseSummaryRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) StatsServiceInterface {
	return &StatsService{
		entryRepo:    entryRepo,
		summaryRepo:  summaryRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

type trendAccumulator struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// GetStats aggregates all of the owner's entries in a single pass: overall
// totals, per-category breakdown, and the monthly and weekly trend windows.
// Trend buckets come from the months and weeks actually present in the data,
// truncated to the most recent six months and eight weeks.
func (s *StatsService) GetStats(ownerID uuid.UUID) (*dto.StatsResponse, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("stats_aggregation", time.Since(started))
	}()

	entries, err := s.entryRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	byCategory := make(map[string]*models.CategoryTotal)
	byMonth := make(map[string]*trendAccumulator)
	byWeek := make(map[string]*trendAccumulator)

	for i := range entries {
		entry := &entries[i]

		if entry.IsExpense() {
			totalExpenses = totalExpenses.Add(entry.Amount)
		} else {
			totalIncome = totalIncome.Add(entry.Amount)
		}

		catKey := entry.CategoryID.String()
		stat, ok := byCategory[catKey]
		if !ok {
			stat = &models.CategoryTotal{
				CategoryID:   catKey,
				CategoryName: entry.Category.Name,
				Total:        decimal.Zero,
			}
			byCategory[catKey] = stat
		}
		stat.Total = stat.Total.Add(entry.Amount)
		stat.Count++

		accumulate(bucket(byMonth, entry.Month()), entry)
		accumulate(bucket(byWeek, weekStartKey(entry.Date)), entry)
	}

	monthBuckets := trailingKeys(byMonth, monthlyTrendMonths)
	weekBuckets := trailingKeys(byWeek, weeklyTrendWeeks)

	categoryStats := make([]dto.CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		categoryStats = append(categoryStats, dto.CategoryStat{
			CategoryID:   stat.CategoryID,
			CategoryName: stat.CategoryName,
			Total:        stat.Total.StringFixed(2),
			Count:        stat.Count,
		})
	}
	sort.Slice(categoryStats, func(i, j int) bool {
		return categoryStats[i].CategoryName < categoryStats[j].CategoryName
	})

	return &dto.StatsResponse{
		TotalIncome:   totalIncome.StringFixed(2),
		TotalExpenses: totalExpenses.StringFixed(2),
		ByCategory:    categoryStats,
		MonthlyTrend:  trendSeries(monthBuckets, byMonth),
		WeeklyTrend:   trendSeries(weekBuckets, byWeek),
	}, nil
}

// GetExpenseSummary folds the monthly summary rows overlapping [startDate,
// endDate] into a combined per-category map keyed by category name. Pure
// read; no budget check runs here.
func (s *StatsService) GetExpenseSummary(ownerID uuid.UUID, startDate, endDate time.Time) (*dto.ExpenseSummaryResponse, error) {
	if endDate.Before(startDate) {
		return nil, errors.New("end date precedes start date")
	}

	startMonth := startDate.Format(models.MonthLayout)
	endMonth := endDate.Format(models.MonthLayout)

	summaries, err := s.summaryRepo.GetByMonthRange(ownerID, startMonth, endMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense summaries: %w", err)
	}

	items, err := s.summaryRepo.GetItemsByMonthRange(ownerID, startMonth, endMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense summary items: %w", err)
	}

	names, err := s.categoryNames(ownerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, summary := range summaries {
		total = total.Add(summary.TotalExpense)
	}

	folded := make(map[string]decimal.Decimal)
	for _, item := range items {
		name, ok := names[item.CategoryID]
		if !ok {
			name = item.CategoryID.String()
		}
		folded[name] = folded[name].Add(item.Amount)
	}

	categories := make(map[string]string, len(folded))
	for name, amount := range folded {
		categories[name] = amount.StringFixed(2)
	}

	return &dto.ExpenseSummaryResponse{
		StartDate:     startDate.Format(models.DateLayout),
		EndDate:       endDate.Format(models.DateLayout),
		TotalExpenses: total.StringFixed(2),
		Categories:    categories,
	}, nil
}

// GetComparison groups income and expenses by category within the period
// window using grouped-sum SQL rather than loading entries.
func (s *StatsService) GetComparison(ownerID uuid.UUID, period string) (*dto.ComparisonResponse, error) {
	start, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	incomeRows, err := s.entryRepo.GetCategoryTotals(ownerID, models.EntryTypeIncome, &start, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income: %w", err)
	}

	expenseRows, err := s.entryRepo.GetCategoryTotals(ownerID, models.EntryTypeExpense, &start, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}

	revenue := comparisonStats(incomeRows)
	expenses := comparisonStats(expenseRows)

	type pair struct {
		name    string
		revenue decimal.Decimal
		expense decimal.Decimal
	}
	combined := make(map[string]*pair)
	for _, row := range incomeRows {
		combined[row.CategoryID] = &pair{name: row.CategoryName, revenue: row.Total, expense: decimal.Zero}
	}
	for _, row := range expenseRows {
		if p, ok := combined[row.CategoryID]; ok {
			p.expense = row.Total
		} else {
			combined[row.CategoryID] = &pair{name: row.CategoryName, revenue: decimal.Zero, expense: row.Total}
		}
	}

	net := decimal.Zero
	combinedStats := make([]dto.ComparisonCategory, 0, len(combined))
	for id, p := range combined {
		net = net.Add(p.revenue).Sub(p.expense)
		combinedStats = append(combinedStats, dto.ComparisonCategory{
			CategoryID:   id,
			CategoryName: p.name,
			Revenue:      p.revenue.StringFixed(2),
			Expense:      p.expense.StringFixed(2),
		})
	}
	sort.Slice(combinedStats, func(i, j int) bool {
		return combinedStats[i].CategoryName < combinedStats[j].CategoryName
	})

	return &dto.ComparisonResponse{
		Period:     period,
		Revenue:    revenue,
		Expenses:   expenses,
		Combined:   combinedStats,
		NetBalance: net.StringFixed(2),
	}, nil
}

func (s *StatsService) categoryNames(ownerID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}

func accumulate(acc *trendAccumulator, entry *models.Entry) {
	if entry.IsExpense() {
		acc.expenses = acc.expenses.Add(entry.Amount)
	} else {
		acc.income = acc.income.Add(entry.Amount)
	}
}

func trendSeries(buckets []string, data map[string]*trendAccumulator) []dto.TrendBucket {
	series := make([]dto.TrendBucket, 0, len(buckets))
	for _, key := range buckets {
		acc := data[key]
		series = append(series, dto.TrendBucket{
			Bucket:   key,
			Income:   acc.income.StringFixed(2),
			Expenses: acc.expenses.StringFixed(2),
			Net:      acc.income.Sub(acc.expenses).StringFixed(2),
		})
	}
	return series
}

func bucket(data map[string]*trendAccumulator, key string) *trendAccumulator {
	acc, ok := data[key]
	if !ok {
		acc = &trendAccumulator{income: decimal.Zero, expenses: decimal.Zero}
		data[key] = acc
	}
	return acc
}

// trailingKeys returns the n most recent bucket keys present in the data, in
// ascending order. Both the YYYY-MM and YYYY-MM-DD key formats sort
// chronologically as strings.
func trailingKeys(data map[string]*trendAccumulator, n int) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	return keys
}

func weekStartKey(date time.Time) string {
	return startOfWeek(date).Format(models.DateLayout)
}

func startOfWeek(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.AddDate(0, 0, -offset)
}

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, ErrInvalidPeriod
	}
}

func comparisonStats(rows []models.ComparisonRow) []dto.CategoryStat {
	stats := make([]dto.CategoryStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, dto.CategoryStat{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total.StringFixed(2),
		})
	}
	return stats
}
