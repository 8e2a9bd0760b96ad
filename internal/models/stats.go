package models

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the per-category aggregation over entries.
type CategoryTotal struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// TrendPoint is one bucket of a monthly or weekly trend series.
type TrendPoint struct {
	Bucket   string          `json:"bucket"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// ComparisonRow is one category's grouped income or expense sum within a
// comparison window, produced directly by a grouped-sum query.
type ComparisonRow struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Total        decimal.Decimal `json:"total"`
}
