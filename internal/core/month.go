package core

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth returns the month containing t.
func NewYearMonth(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, Invalid("month", fmt.Errorf("expected YYYY-MM, got %q", s))
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) FirstDay() Date {
	return NewDate(ym.Year, ym.Month, 1)
}

func (ym YearMonth) LastDay() Date {
	// day 0 of the next month normalizes to the last day of this one
	return NewDate(ym.Year, ym.Month+1, 0)
}

// Contains reports whether d falls within [FirstDay, LastDay].
func (ym YearMonth) Contains(d Date) bool {
	return d.Year() == ym.Year && d.Month() == ym.Month
}

func (ym YearMonth) Next() YearMonth {
	return NewYearMonth(ym.FirstDay().AddDate(0, 1, 0))
}

func (ym YearMonth) Prev() YearMonth {
	return NewYearMonth(ym.FirstDay().AddDate(0, -1, 0))
}
