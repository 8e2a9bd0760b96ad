package dto

// CategoryStat aggregates an owner's entries for one category.
type CategoryStat struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Total        string `json:"total"`
	Count        int64  `json:"count"`
}

// TrendBucket is one point of a monthly or weekly trend series.
type TrendBucket struct {
	Bucket   string `json:"bucket"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// StatsResponse is the one-pass aggregation over all of an owner's entries.
type StatsResponse struct {
	TotalIncome   string         `json:"totalIncome"`
	TotalExpenses string         `json:"totalExpenses"`
	ByCategory    []CategoryStat `json:"byCategory"`
	MonthlyTrend  []TrendBucket  `json:"monthlyTrend"`
	WeeklyTrend   []TrendBucket  `json:"weeklyTrend"`
}

// ExpenseSummaryResponse folds the per-month summary documents overlapping a
// date range into one combined category breakdown.
type ExpenseSummaryResponse struct {
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	TotalExpenses string            `json:"totalExpenses"`
	Categories    map[string]string `json:"categories"`
}

// ComparisonCategory is the combined revenue/expense view for one category.
type ComparisonCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Revenue      string `json:"revenue"`
	Expense      string `json:"expense"`
}

// ComparisonResponse groups income and expenses by category within a period
// window (daily, monthly or yearly).
type ComparisonResponse struct {
	Period     string               `json:"period"`
	Revenue    []CategoryStat       `json:"revenue"`
	Expenses   []CategoryStat       `json:"expenses"`
	Combined   []ComparisonCategory `json:"combined"`
	NetBalance string               `json:"netBalance"`
}
