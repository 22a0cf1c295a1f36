package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Income categories
const (
	CategorySalary      Category = "월급"
	CategoryAllowance   Category = "용돈"
	CategoryOtherIncome Category = "기타수익"
)

// Expense categories
const (
	CategoryFood         Category = "식비"
	CategoryTransport    Category = "교통비"
	CategoryHousehold    Category = "생활용품"
	CategoryHobby        Category = "취미/문화"
	CategoryOtherExpense Category = "기타지출"
)

const dateLayout = "2006-01-02"

type (
	Kind     string
	Category string

	Date struct {
		time.Time
	}

	User struct {
		ID     string
		Secret string
	}

	Entry struct {
		ID       int64 // assigned by the store
		UserID   string
		Date     Date
		Kind     Kind
		Category Category
		Amount   int64 // won
		Memo     string
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidKind     = errors.New("invalid kind")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("category does not belong to kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyUser       = errors.New("empty user id")
	ErrEmptySecret     = errors.New("empty secret")
)

// ValidationError marks input that was rejected before reaching storage.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps err as a ValidationError for field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// ValidateKind rejects anything other than income or expense.
func ValidateKind(k Kind) error {
	if !k.Valid() {
		return Invalid("kind", ErrInvalidKind)
	}
	return nil
}

// IsValidation reports whether err was produced by input validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var categoriesByKind = map[Kind][]Category{
	KindIncome:  {CategorySalary, CategoryAllowance, CategoryOtherIncome},
	KindExpense: {CategoryFood, CategoryTransport, CategoryHousehold, CategoryHobby, CategoryOtherExpense},
}

// ParseKind accepts the canonical names as well as the Korean display labels.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindIncome), "수익":
		return KindIncome, nil
	case string(KindExpense), "지출":
		return KindExpense, nil
	default:
		return "", Invalid("kind", ErrInvalidKind)
	}
}

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense:
		return true
	default:
		return false
	}
}

// Label returns the display label used on screens and in exported sheets.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "수익"
	case KindExpense:
		return "지출"
	default:
		return string(k)
	}
}

func (k Kind) String() string { return string(k) }

// Categories returns the closed category list for the kind.
func (k Kind) Categories() []Category {
	return append([]Category(nil), categoriesByKind[k]...)
}

// Kind returns the kind the category belongs to, or "" for unknown categories.
func (c Category) Kind() Kind {
	for kind, cats := range categoriesByKind {
		for _, cat := range cats {
			if cat == c {
				return kind
			}
		}
	}
	return ""
}

func (c Category) String() string { return string(c) }

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, Invalid("date", ErrInvalidDate)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return Invalid("date", ErrInvalidDate)
	}
	return nil
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// YearMonth returns the month d falls in.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return Invalid("user id", ErrEmptyUser)
	}
	if u.Secret == "" {
		return Invalid("secret", ErrEmptySecret)
	}
	return nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return Invalid("user id", ErrEmptyUser)
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := ValidateKind(e.Kind); err != nil {
		return err
	}
	if strings.TrimSpace(string(e.Category)) == "" {
		return Invalid("category", ErrEmptyCategory)
	}
	if e.Category.Kind() != e.Kind {
		return Invalid("category", ErrUnknownCategory)
	}
	if e.Amount <= 0 {
		return Invalid("amount", ErrInvalidAmount)
	}
	return nil
}

// Signed returns the amount as it contributes to a balance.
func (e Entry) Signed() int64 {
	if e.Kind == KindExpense {
		return -e.Amount
	}
	return e.Amount
}
