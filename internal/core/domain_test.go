package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(NewDate(2025, time.December, 1).Time) {
		t.Fatalf("got %v", d)
	}
	if d.String() != "2025-12-01" {
		t.Fatalf("String() = %q", d.String())
	}
	if _, err := ParseDate("2025-13-01"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", KindIncome, true},
		{"Expense", KindExpense, true},
		{"수익", KindIncome, true},
		{"지출", KindExpense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %q, %v", tc.in, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q: expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestCategoryKind(t *testing.T) {
	for _, kind := range []Kind{KindIncome, KindExpense} {
		for _, c := range kind.Categories() {
			if c.Kind() != kind {
				t.Errorf("%s: Kind() = %q, want %q", c, c.Kind(), kind)
			}
		}
	}
	if Category("커피").Kind() != "" {
		t.Error("unknown category should have no kind")
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{
		UserID:   "u1",
		Date:     NewDate(2025, 12, 1),
		Kind:     KindExpense,
		Category: CategoryFood,
		Amount:   15000,
		Memo:     "점심 식사",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		mut  func(e *Entry)
		want error
	}{
		{"zero amount", func(e *Entry) { e.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Entry) { e.Amount = -1 }, ErrInvalidAmount},
		{"bad kind", func(e *Entry) { e.Kind = "transfer" }, ErrInvalidKind},
		{"empty category", func(e *Entry) { e.Category = " " }, ErrEmptyCategory},
		{"category of other kind", func(e *Entry) { e.Category = CategorySalary }, ErrUnknownCategory},
		{"unknown category", func(e *Entry) { e.Category = "커피" }, ErrUnknownCategory},
		{"zero date", func(e *Entry) { e.Date = Date{} }, ErrInvalidDate},
		{"empty user", func(e *Entry) { e.UserID = "" }, ErrEmptyUser},
	}
	for _, tc := range bads {
		t.Run(tc.name, func(t *testing.T) {
			e := good
			tc.mut(&e)
			err := e.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected a ValidationError, got %T", err)
			}
		})
	}
}

func TestEntryValidateAcceptsLongMemo(t *testing.T) {
	e := Entry{
		UserID:   "u1",
		Date:     NewDate(2025, 12, 1),
		Kind:     KindExpense,
		Category: CategoryFood,
		Amount:   15000,
		Memo:     strings.Repeat("점", 500),
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidateKind(t *testing.T) {
	for _, k := range []Kind{KindIncome, KindExpense} {
		if err := ValidateKind(k); err != nil {
			t.Errorf("ValidateKind(%q) = %v", k, err)
		}
	}
	err := ValidateKind("both")
	if !errors.Is(err, ErrInvalidKind) || !IsValidation(err) {
		t.Fatalf("expected validation error wrapping ErrInvalidKind, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	if err := (User{ID: "u1", Secret: "pw"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (User{ID: "", Secret: "pw"}).Validate(); !errors.Is(err, ErrEmptyUser) {
		t.Fatalf("expected ErrEmptyUser, got %v", err)
	}
	if err := (User{ID: "u1"}).Validate(); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestEntrySigned(t *testing.T) {
	in := Entry{Kind: KindIncome, Amount: 100}
	out := Entry{Kind: KindExpense, Amount: 40}
	if in.Signed()+out.Signed() != 60 {
		t.Fatalf("got %d", in.Signed()+out.Signed())
	}
}
