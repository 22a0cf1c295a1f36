package services

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/storage/memory"
)

var december = core.YearMonth{Year: 2025, Month: time.December}

func seedDecember(t *testing.T, svc *LedgerService) {
	t.Helper()
	d := core.NewDate(2025, time.December, 1)
	for _, e := range []core.Entry{
		entry("u1", d, core.KindIncome, core.CategorySalary, 3_000_000),
		entry("u1", d, core.KindExpense, core.CategoryFood, 15_000),
		entry("u1", d, core.KindExpense, core.CategoryTransport, 50_000),
	} {
		if _, err := svc.CreateEntry(context.Background(), e); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}
	}
}

func TestDecemberScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agg := NewAggregator(svc.store)
	seedDecember(t, svc)

	net, err := agg.MonthlyNetIncome(ctx, "u1", december)
	if err != nil {
		t.Fatalf("MonthlyNetIncome: %v", err)
	}
	if net != 2_935_000 {
		t.Errorf("net = %d, want 2935000", net)
	}

	ratios, err := agg.CategoryExpenseRatios(ctx, "u1", december)
	if err != nil {
		t.Fatalf("CategoryExpenseRatios: %v", err)
	}
	want := map[core.Category]float64{core.CategoryFood: 23.08, core.CategoryTransport: 76.92}
	if len(ratios) != len(want) {
		t.Fatalf("ratios = %v, want keys of %v", ratios, want)
	}
	for cat, w := range want {
		if math.Abs(ratios[cat]-w) > 0.01 {
			t.Errorf("ratio[%s] = %.4f, want ≈%.2f", cat, ratios[cat], w)
		}
	}

	income, _ := agg.MonthlyTotal(ctx, "u1", december, core.KindIncome)
	expense, _ := agg.MonthlyTotal(ctx, "u1", december, core.KindExpense)
	if income != 3_000_000 || expense != 65_000 {
		t.Errorf("totals = %d/%d, want 3000000/65000", income, expense)
	}

	rec, err := agg.Recommendation(ctx, "u1", december)
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if rec.Tier != core.TierStandard {
		t.Errorf("tier = %v, want standard", rec.Tier)
	}
}

func TestMonthBoundaries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agg := NewAggregator(svc.store)

	for _, d := range []core.Date{
		core.NewDate(2025, time.November, 30),
		core.NewDate(2025, time.December, 1),
		core.NewDate(2025, time.December, 31),
		core.NewDate(2026, time.January, 1),
	} {
		if _, err := svc.CreateEntry(ctx, entry("u1", d, core.KindExpense, core.CategoryHousehold, 1_000)); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}
	}

	got, err := agg.MonthlyTotal(ctx, "u1", december, core.KindExpense)
	if err != nil {
		t.Fatalf("MonthlyTotal: %v", err)
	}
	if got != 2_000 {
		t.Errorf("december expense = %d, want 2000 (first and last day only)", got)
	}
}

func TestMonthlyTotalRejectsInvalidKind(t *testing.T) {
	agg := NewAggregator(memory.New())
	_, err := agg.MonthlyTotal(context.Background(), "u1", december, core.Kind("both"))
	if !core.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestEmptyAggregates(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(memory.New())

	balance, err := agg.TotalBalance(ctx, "u1")
	if err != nil || balance != 0 {
		t.Errorf("TotalBalance = %d, %v; want 0", balance, err)
	}

	sum, err := agg.DailySummary(ctx, "u1", core.NewDate(2025, time.December, 1))
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if sum.Income != 0 || sum.Expense != 0 {
		t.Errorf("DailySummary = %+v, want zeros", sum)
	}

	ratios, err := agg.CategoryExpenseRatios(ctx, "u1", december)
	if err != nil {
		t.Fatalf("CategoryExpenseRatios: %v", err)
	}
	if ratios == nil || len(ratios) != 0 {
		t.Errorf("ratios = %#v, want empty map", ratios)
	}
}

func TestRatiosEmptyWhenOnlyIncome(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agg := NewAggregator(svc.store)
	svc.CreateEntry(ctx, entry("u1", core.NewDate(2025, time.December, 3), core.KindIncome, core.CategoryAllowance, 50_000))

	ratios, err := agg.CategoryExpenseRatios(ctx, "u1", december)
	if err != nil {
		t.Fatalf("CategoryExpenseRatios: %v", err)
	}
	if len(ratios) != 0 {
		t.Errorf("ratios = %v, want empty", ratios)
	}
}

func TestDailySummarySplitsKinds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agg := NewAggregator(svc.store)
	seedDecember(t, svc)

	sum, err := agg.DailySummary(ctx, "u1", core.NewDate(2025, time.December, 1))
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if sum.Income != 3_000_000 || sum.Expense != 65_000 {
		t.Errorf("DailySummary = %+v", sum)
	}

	other, _ := agg.DailySummary(ctx, "u2", core.NewDate(2025, time.December, 1))
	if other.Income != 0 || other.Expense != 0 {
		t.Errorf("other user's summary leaked: %+v", other)
	}
}

// Random create/delete sequences keep the balance equal to the surviving
// income minus surviving expense, and ratios summing to 100.
func TestBalanceAndRatiosOverRandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	expenseCats := core.KindExpense.Categories()
	incomeCats := core.KindIncome.Categories()

	for round := 0; round < 20; round++ {
		svc, _ := newTestService(t)
		agg := NewAggregator(svc.store)
		live := map[int64]core.Entry{}

		for step := 0; step < 60; step++ {
			if len(live) > 0 && rng.Intn(4) == 0 {
				for id := range live {
					if ok, err := svc.DeleteEntry(ctx, id); err != nil || !ok {
						t.Fatalf("DeleteEntry(%d) = %v, %v", id, ok, err)
					}
					delete(live, id)
					break
				}
				continue
			}
			e := entry("u1", core.NewDate(2025, time.December, 1+rng.Intn(31)), core.KindExpense,
				expenseCats[rng.Intn(len(expenseCats))], int64(1+rng.Intn(100_000)))
			if rng.Intn(3) == 0 {
				e.Kind = core.KindIncome
				e.Category = incomeCats[rng.Intn(len(incomeCats))]
			}
			saved, err := svc.CreateEntry(ctx, e)
			if err != nil {
				t.Fatalf("CreateEntry: %v", err)
			}
			live[saved.ID] = saved
		}

		var want, spent int64
		for _, e := range live {
			want += e.Signed()
			if e.Kind == core.KindExpense {
				spent += e.Amount
			}
		}
		got, err := agg.TotalBalance(ctx, "u1")
		if err != nil {
			t.Fatalf("TotalBalance: %v", err)
		}
		if got != want {
			t.Fatalf("round %d: balance = %d, want %d", round, got, want)
		}

		ratios, _ := agg.CategoryExpenseRatios(ctx, "u1", december)
		if spent == 0 {
			if len(ratios) != 0 {
				t.Fatalf("round %d: ratios %v with no expense", round, ratios)
			}
			continue
		}
		var total float64
		for _, r := range ratios {
			total += r
		}
		if math.Abs(total-100) > 0.01 {
			t.Fatalf("round %d: ratios sum to %f", round, total)
		}
	}
}

func TestMonthOverviewOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agg := NewAggregator(svc.store)
	seedDecember(t, svc)

	ov, err := agg.MonthOverview(ctx, "u1", december)
	if err != nil {
		t.Fatalf("MonthOverview: %v", err)
	}
	if ov.Income != 3_000_000 || ov.Expense != 65_000 || ov.Net != 2_935_000 {
		t.Errorf("overview totals = %+v", ov)
	}
	if len(ov.ByCategory) != 2 || ov.ByCategory[0].Category != core.CategoryTransport {
		t.Fatalf("ByCategory = %+v, want transport first", ov.ByCategory)
	}

	empty, err := agg.MonthOverview(ctx, "u1", december.Next())
	if err != nil {
		t.Fatalf("MonthOverview empty: %v", err)
	}
	if empty.ByCategory == nil || len(empty.ByCategory) != 0 {
		t.Errorf("empty month ByCategory = %#v", empty.ByCategory)
	}
}

func TestAggregatorStorageFault(t *testing.T) {
	boom := errors.New("connection reset")
	agg := NewAggregator(failingStore{Store: memory.New(), err: boom})

	if _, err := agg.TotalBalance(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Errorf("TotalBalance err = %v, want wrapped fault", err)
	}
	if _, err := agg.MonthlyNetIncome(context.Background(), "u1", december); !errors.Is(err, boom) {
		t.Errorf("MonthlyNetIncome err = %v, want wrapped fault", err)
	}
}
