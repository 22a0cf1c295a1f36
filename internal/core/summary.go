package core

// DailySummary holds per-kind totals for a single date.
type DailySummary struct {
	Date    Date
	Income  int64
	Expense int64
}

// CategoryShare is one category's portion of a month's expenses.
type CategoryShare struct {
	Category Category
	Amount   int64
	Percent  float64
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Month      YearMonth
	Income     int64
	Expense    int64
	Net        int64
	ByCategory []CategoryShare // descending by amount
}
