package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	Income  Category = "inc"
	Expense Category = "exp"
)

const maxDescriptionLen = 200

// MaxAmountCents caps a single amount at one hundred billion currency units.
const MaxAmountCents int64 = 10_000_000_000_000

type (
	// Category tells income lines apart from expense lines. The value doubles
	// as the prefix of a row identifier ("inc-0", "exp-3").
	Category string

	Money struct {
		Cents int64
	}

	// Entry is one income or expense line. Percentage is only meaningful for
	// expenses and is refreshed by the ledger on demand.
	Entry struct {
		ID          int
		Category    Category
		Description string
		Amount      Money
		Percentage  Percentage
	}
)

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// Categories lists the categories in display order.
func Categories() []Category {
	return []Category{Income, Expense}
}

// ParseCategory accepts the short codes used by the page and a few
// human spellings used by the terminal front end.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inc", "income", "+":
		return Income, nil
	case "exp", "expense", "-":
		return Expense, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) Valid() bool {
	return c == Income || c == Expense
}

// Label returns the human name of the category.
func (c Category) Label() string {
	switch c {
	case Income:
		return "Income"
	case Expense:
		return "Expenses"
	}
	return string(c)
}

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

// Add saturates at the int64 bounds instead of wrapping.
func (m Money) Add(n Money) Money {
	switch {
	case n.Cents > 0 && m.Cents > math.MaxInt64-n.Cents:
		return Money{Cents: math.MaxInt64}
	case n.Cents < 0 && m.Cents < math.MinInt64-n.Cents:
		return Money{Cents: math.MinInt64}
	}
	return Money{Cents: m.Cents + n.Cents}
}

func (m Money) Sub(n Money) Money {
	if n.Cents == math.MinInt64 {
		return m.Add(Money{Cents: math.MaxInt64}).Add(Money{Cents: 1})
	}
	return m.Add(Money{Cents: -n.Cents})
}

// ItemID is the row identifier the presentation layer uses for this entry.
func (e Entry) ItemID() string {
	return string(e.Category) + "-" + strconv.Itoa(e.ID)
}

func (e Entry) IsExpense() bool {
	return e.Category == Expense
}

func (e Entry) Validate() error {
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return e.Amount.Validate()
}
