package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gagyebu/internal/core"
)

const (
	DemoUserID = "test"
	DemoSecret = "1234"
)

func demoEntries() []core.Entry {
	return []core.Entry{
		{UserID: DemoUserID, Date: core.NewDate(2025, time.December, 15), Kind: core.KindIncome, Category: core.CategorySalary, Amount: 3_000_000, Memo: "12월 월급"},
		{UserID: DemoUserID, Date: core.NewDate(2025, time.December, 16), Kind: core.KindExpense, Category: core.CategoryFood, Amount: 15_000, Memo: "점심 식사"},
		{UserID: DemoUserID, Date: core.NewDate(2025, time.December, 17), Kind: core.KindExpense, Category: core.CategoryTransport, Amount: 50_000, Memo: "대중교통 카드 충전"},
	}
}

// SeedDemo registers the demonstration account and its entries. It does
// nothing when the demo user already exists, whatever entries are present.
// It reports whether anything was written.
func (s *LedgerService) SeedDemo(ctx context.Context) (bool, error) {
	exists, err := s.UserExists(ctx, DemoUserID)
	if err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	if exists {
		slog.InfoContext(ctx, "Demo user present, skipping seed", "user_id", DemoUserID)
		return false, nil
	}

	if _, err := s.Register(ctx, DemoUserID, DemoSecret); err != nil {
		return false, fmt.Errorf("seed demo user: %w", err)
	}
	for _, e := range demoEntries() {
		if _, err := s.CreateEntry(ctx, e); err != nil {
			return false, fmt.Errorf("seed demo entry %s: %w", e.Date, err)
		}
	}

	slog.InfoContext(ctx, "Seeded demo data", "user_id", DemoUserID, "entries", len(demoEntries()))
	return true, nil
}
