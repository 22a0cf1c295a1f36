package memory

import (
	"context"
	"testing"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, New())
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	d := core.NewDate(2025, time.December, 16)
	if _, err := s.CreateEntry(ctx, core.Entry{UserID: "u", Date: d, Kind: core.KindExpense, Category: core.CategoryFood, Amount: 100}); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	list, _ := s.ListByUser(ctx, "u")
	list[0].Amount = 1

	again, _ := s.ListByUser(ctx, "u")
	if again[0].Amount != 100 {
		t.Fatalf("internal state changed through returned slice: %d", again[0].Amount)
	}
}
