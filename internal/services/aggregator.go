package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

// Aggregator derives balances and totals from the entry store. Nothing is
// cached: every call reads the entries it needs.
type Aggregator struct {
	entries storage.EntryStore
}

func NewAggregator(entries storage.EntryStore) *Aggregator {
	return &Aggregator{entries: entries}
}

// TotalBalance is all-time income minus expense for the user.
func (a *Aggregator) TotalBalance(ctx context.Context, userID string) (int64, error) {
	entries, err := a.entries.ListByUser(ctx, userID)
	if err != nil {
		return 0, a.fault(ctx, "total_balance", userID, err)
	}
	var balance int64
	for _, e := range entries {
		balance += e.Signed()
	}
	return balance, nil
}

// MonthlyTotal sums entries of kind within ym.
func (a *Aggregator) MonthlyTotal(ctx context.Context, userID string, ym core.YearMonth, kind core.Kind) (int64, error) {
	if err := core.ValidateKind(kind); err != nil {
		return 0, err
	}
	entries, err := a.month(ctx, userID, ym)
	if err != nil {
		return 0, a.fault(ctx, "monthly_total", userID, err)
	}
	var total int64
	for _, e := range entries {
		if e.Kind == kind {
			total += e.Amount
		}
	}
	return total, nil
}

// MonthlyNetIncome is income minus expense within ym; negative on deficit.
func (a *Aggregator) MonthlyNetIncome(ctx context.Context, userID string, ym core.YearMonth) (int64, error) {
	entries, err := a.month(ctx, userID, ym)
	if err != nil {
		return 0, a.fault(ctx, "monthly_net_income", userID, err)
	}
	var net int64
	for _, e := range entries {
		net += e.Signed()
	}
	return net, nil
}

// DailySummary totals income and expense on a single date.
func (a *Aggregator) DailySummary(ctx context.Context, userID string, date core.Date) (core.DailySummary, error) {
	entries, err := a.entries.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return core.DailySummary{}, a.fault(ctx, "daily_summary", userID, err)
	}
	sum := core.DailySummary{Date: date}
	for _, e := range entries {
		switch e.Kind {
		case core.KindIncome:
			sum.Income += e.Amount
		case core.KindExpense:
			sum.Expense += e.Amount
		}
	}
	return sum, nil
}

// CategoryExpenseRatios maps each expense category used in ym to its
// percentage of the month's expense. The map is empty when nothing was spent.
func (a *Aggregator) CategoryExpenseRatios(ctx context.Context, userID string, ym core.YearMonth) (map[core.Category]float64, error) {
	entries, err := a.month(ctx, userID, ym)
	if err != nil {
		return nil, a.fault(ctx, "category_expense_ratios", userID, err)
	}
	sums, total := expenseByCategory(entries)
	ratios := make(map[core.Category]float64, len(sums))
	if total == 0 {
		return ratios, nil
	}
	for cat, amount := range sums {
		ratios[cat] = percent(amount, total)
	}
	return ratios, nil
}

// MonthOverview bundles the month's totals with a category breakdown
// ordered by descending amount.
func (a *Aggregator) MonthOverview(ctx context.Context, userID string, ym core.YearMonth) (core.MonthOverview, error) {
	entries, err := a.month(ctx, userID, ym)
	if err != nil {
		return core.MonthOverview{}, a.fault(ctx, "month_overview", userID, err)
	}

	ov := core.MonthOverview{Month: ym, ByCategory: []core.CategoryShare{}}
	for _, e := range entries {
		if e.Kind == core.KindIncome {
			ov.Income += e.Amount
		}
	}
	sums, total := expenseByCategory(entries)
	ov.Expense = total
	ov.Net = ov.Income - ov.Expense

	for cat, amount := range sums {
		ov.ByCategory = append(ov.ByCategory, core.CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  percent(amount, total),
		})
	}
	sort.Slice(ov.ByCategory, func(i, j int) bool {
		if ov.ByCategory[i].Amount != ov.ByCategory[j].Amount {
			return ov.ByCategory[i].Amount > ov.ByCategory[j].Amount
		}
		return ov.ByCategory[i].Category < ov.ByCategory[j].Category
	})
	return ov, nil
}

// Recommendation classifies the month's net income.
func (a *Aggregator) Recommendation(ctx context.Context, userID string, ym core.YearMonth) (core.Recommendation, error) {
	net, err := a.MonthlyNetIncome(ctx, userID, ym)
	if err != nil {
		return core.Recommendation{}, err
	}
	return core.Recommend(net), nil
}

func (a *Aggregator) month(ctx context.Context, userID string, ym core.YearMonth) ([]core.Entry, error) {
	return a.entries.FindByUserBetween(ctx, userID, ym.FirstDay(), ym.LastDay())
}

func (a *Aggregator) fault(ctx context.Context, op, userID string, err error) error {
	slog.ErrorContext(ctx, "Aggregation failed",
		"component", "aggregator",
		"operation", op,
		"user_id", userID,
		"error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func expenseByCategory(entries []core.Entry) (map[core.Category]int64, int64) {
	sums := make(map[core.Category]int64)
	var total int64
	for _, e := range entries {
		if e.Kind != core.KindExpense {
			continue
		}
		sums[e.Category] += e.Amount
		total += e.Amount
	}
	return sums, total
}

func percent(part, total int64) float64 {
	return float64(part) * 100 / float64(total)
}
