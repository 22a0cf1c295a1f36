// Package core provides money parsing and handling utilities.
//
// Amounts are whole won. This file parses user-entered amounts and
// formats them for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseWon converts a user-entered amount into whole won.
//
// Thousands separators and a trailing "원" are accepted. Fractional values,
// signs, zero and overflow are rejected.
//
// Examples:
//   ParseWon("15000")      -> 15000, nil
//   ParseWon("3,000,000")  -> 3000000, nil
//   ParseWon("50,000원")   -> 50000, nil
//   ParseWon("12.5")       -> 0, ErrInvalidAmount
func ParseWon(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "원")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Invalid("amount", ErrInvalidAmount)
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, Invalid("amount", ErrInvalidAmount)
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, Invalid("amount", ErrInvalidAmount)
	}
	return v, nil
}

// FormatWon formats an amount with thousands separators, e.g. "-15,000원".
func FormatWon(amount int64) string {
	neg := amount < 0
	digits := strconv.FormatInt(amount, 10)
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	b.WriteString("원")
	return b.String()
}
