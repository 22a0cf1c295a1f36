package memory

import (
	"context"
	"testing"
	"time"

	"gagyebu/internal/core"
)

func TestMirrorAppendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := New()
	e := core.Entry{ID: 2, UserID: "test", Date: core.NewDate(2025, time.December, 16), Kind: core.KindExpense, Category: core.CategoryFood, Amount: 15_000}

	for i := 0; i < 2; i++ {
		if err := m.AppendEntry(ctx, e); err != nil {
			t.Fatalf("AppendEntry: %v", err)
		}
	}
	m.AppendEntry(ctx, core.Entry{ID: 1, UserID: "test"})

	rows, _ := m.ListEntries(ctx)
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 2 {
		t.Fatalf("rows = %+v, want ids 1,2", rows)
	}

	if err := m.DeleteEntry(ctx, 2); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if err := m.DeleteEntry(ctx, 2); err != nil {
		t.Fatalf("second DeleteEntry: %v", err)
	}
	rows, _ = m.ListEntries(ctx)
	if len(rows) != 1 {
		t.Errorf("rows after delete = %+v", rows)
	}
}
