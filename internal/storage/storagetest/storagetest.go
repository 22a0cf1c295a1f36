// Package storagetest holds behaviour checks shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

// Run exercises s against the storage.Store contract. s must be empty.
func Run(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("ensure schema twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := s.EnsureSchema(ctx); err != nil {
				t.Fatalf("EnsureSchema call %d: %v", i+1, err)
			}
		}
	})

	t.Run("users", func(t *testing.T) {
		if err := s.CreateUser(ctx, core.User{ID: "alice", Secret: "pw"}); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		err := s.CreateUser(ctx, core.User{ID: "alice", Secret: "other"})
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("duplicate CreateUser err = %v, want ErrAlreadyExists", err)
		}
		u, err := s.FindUser(ctx, "alice")
		if err != nil {
			t.Fatalf("FindUser: %v", err)
		}
		if u.Secret != "pw" {
			t.Errorf("secret = %q, want original %q", u.Secret, "pw")
		}
		if _, err := s.FindUser(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("FindUser unknown err = %v, want ErrNotFound", err)
		}
	})

	t.Run("entries", func(t *testing.T) {
		d15 := core.NewDate(2025, time.December, 15)
		d16 := core.NewDate(2025, time.December, 16)
		jan := core.NewDate(2026, time.January, 1)

		for _, id := range []string{"bob", "carol"} {
			if err := s.CreateUser(ctx, core.User{ID: id, Secret: "pw"}); err != nil {
				t.Fatalf("CreateUser %s: %v", id, err)
			}
		}

		inputs := []core.Entry{
			{UserID: "bob", Date: d15, Kind: core.KindIncome, Category: core.CategorySalary, Amount: 3_000_000, Memo: "12월 월급"},
			{UserID: "bob", Date: d16, Kind: core.KindExpense, Category: core.CategoryFood, Amount: 15_000},
			{UserID: "bob", Date: d16, Kind: core.KindExpense, Category: core.CategoryTransport, Amount: 50_000},
			{UserID: "carol", Date: d16, Kind: core.KindExpense, Category: core.CategoryFood, Amount: 7_000},
			{UserID: "bob", Date: jan, Kind: core.KindExpense, Category: core.CategoryHobby, Amount: 20_000},
		}
		var created []core.Entry
		var lastID int64
		for _, in := range inputs {
			e, err := s.CreateEntry(ctx, in)
			if err != nil {
				t.Fatalf("CreateEntry: %v", err)
			}
			if e.ID <= lastID {
				t.Fatalf("id %d not greater than previous %d", e.ID, lastID)
			}
			lastID = e.ID
			created = append(created, e)
		}

		got, err := s.GetEntry(ctx, created[0].ID)
		if err != nil {
			t.Fatalf("GetEntry: %v", err)
		}
		if got.Memo != "12월 월급" || got.Amount != 3_000_000 || !got.Date.Equal(d15.Time) || got.Category != core.CategorySalary {
			t.Errorf("GetEntry round trip = %+v", got)
		}

		day, err := s.FindByUserAndDate(ctx, "bob", d16)
		if err != nil {
			t.Fatalf("FindByUserAndDate: %v", err)
		}
		if len(day) != 2 || day[0].ID != created[1].ID || day[1].ID != created[2].ID {
			t.Errorf("FindByUserAndDate = %+v, want entries %d and %d", day, created[1].ID, created[2].ID)
		}

		none, err := s.FindByUserAndDate(ctx, "bob", core.NewDate(2025, time.December, 1))
		if err != nil {
			t.Fatalf("FindByUserAndDate empty: %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("empty day = %#v, want empty non-nil slice", none)
		}

		month, err := s.FindByUserBetween(ctx, "bob", core.NewDate(2025, time.December, 1), core.NewDate(2025, time.December, 31))
		if err != nil {
			t.Fatalf("FindByUserBetween: %v", err)
		}
		if len(month) != 3 {
			t.Errorf("FindByUserBetween returned %d entries, want 3", len(month))
		}

		all, err := s.ListByUser(ctx, "bob")
		if err != nil {
			t.Fatalf("ListByUser: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("ListByUser returned %d entries, want 4", len(all))
		}

		ok, err := s.DeleteEntry(ctx, created[1].ID)
		if err != nil || !ok {
			t.Fatalf("DeleteEntry = %v, %v; want true, nil", ok, err)
		}
		ok, err = s.DeleteEntry(ctx, created[1].ID)
		if err != nil || ok {
			t.Errorf("second DeleteEntry = %v, %v; want false, nil", ok, err)
		}
		if _, err := s.GetEntry(ctx, created[1].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetEntry deleted err = %v, want ErrNotFound", err)
		}

		ok, err = s.DeleteEntry(ctx, 999_999)
		if err != nil || ok {
			t.Errorf("DeleteEntry unknown = %v, %v; want false, nil", ok, err)
		}
		all, _ = s.ListByUser(ctx, "bob")
		if len(all) != 3 {
			t.Errorf("after deletes ListByUser returned %d entries, want 3", len(all))
		}

		next, err := s.CreateEntry(ctx, inputs[1])
		if err != nil {
			t.Fatalf("CreateEntry after delete: %v", err)
		}
		if next.ID <= lastID {
			t.Errorf("id %d reused or not increasing after %d", next.ID, lastID)
		}
	})
}
