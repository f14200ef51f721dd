package core

import (
	"math"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"inc", Income, true},
		{" Income ", Income, true},
		{"+", Income, true},
		{"exp", Expense, true},
		{"EXPENSE", Expense, true},
		{"-", Expense, true},
		{"", "", false},
		{"savings", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
	if err := (Money{Cents: MaxAmountCents}).Validate(); err != nil {
		t.Fatalf("expected the cap to be valid, got %v", err)
	}
	if err := (Money{Cents: MaxAmountCents + 1}).Validate(); err == nil {
		t.Fatalf("expected error above the cap")
	}
}

func TestMoneyAddSaturates(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{1, 2, 3},
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MaxInt64 - 1, math.MaxInt64, math.MaxInt64},
		{math.MinInt64, -1, math.MinInt64},
		{-5, 3, -2},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.a}).Add(Money{Cents: tc.b}); got.Cents != tc.want {
			t.Fatalf("%d + %d expected %d, got %d", tc.a, tc.b, tc.want, got.Cents)
		}
	}
	if got := (Money{Cents: 0}).Sub(Money{Cents: math.MinInt64}); got.Cents != math.MaxInt64 {
		t.Fatalf("expected saturation on Sub, got %d", got.Cents)
	}
	if got := (Money{Cents: 10}).Sub(Money{Cents: 25}); got.Cents != -15 {
		t.Fatalf("expected -15, got %d", got.Cents)
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{Category: Expense, Description: "rent", Amount: Money{Cents: 100}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// The limit counts characters, not bytes.
	euros := Entry{Category: Expense, Description: strings.Repeat("€", 200), Amount: Money{Cents: 100}}
	if err := euros.Validate(); err != nil {
		t.Fatalf("expected 200 multi-byte characters to be ok, got %v", err)
	}

	bads := []struct {
		e    Entry
		want error
	}{
		{Entry{Category: "sav", Description: "a", Amount: Money{Cents: 1}}, ErrUnknownCategory},
		{Entry{Category: Income, Description: "  ", Amount: Money{Cents: 1}}, ErrEmptyDescription},
		{Entry{Category: Income, Description: strings.Repeat("x", 201), Amount: Money{Cents: 1}}, ErrDescriptionTooLong},
		{Entry{Category: Income, Description: strings.Repeat("€", 201), Amount: Money{Cents: 1}}, ErrDescriptionTooLong},
		{Entry{Category: Income, Description: "a", Amount: Money{Cents: 0}}, ErrInvalidAmount},
		{Entry{Category: Income, Description: "a", Amount: Money{Cents: MaxAmountCents + 1}}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); err != tc.want {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestEntryItemID(t *testing.T) {
	e := Entry{ID: 3, Category: Expense}
	if got := e.ItemID(); got != "exp-3" {
		t.Fatalf("unexpected item id %q", got)
	}
}

func TestPercentOf(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        Percentage
	}{
		{200, 1000, 20},
		{0, 1000, 0},
		{1000, 1000, 100},
		{1500, 1000, 150},
		{5, 1000, 1}, // 0.5% rounds up
		{4, 1000, 0}, // 0.4% rounds down
		{1, 3, 33},
		{2, 3, 67},
		{200, 0, Unavailable},
	}
	for _, tc := range cases {
		if got := PercentOf(Money{Cents: tc.part}, Money{Cents: tc.whole}); got != tc.want {
			t.Fatalf("PercentOf(%d, %d) = %d, want %d", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestPercentageString(t *testing.T) {
	if got := Percentage(20).String(); got != "20%" {
		t.Fatalf("unexpected %q", got)
	}
	for _, p := range []Percentage{0, Unavailable} {
		if got := p.String(); got != "---" {
			t.Fatalf("%d: unexpected %q", p, got)
		}
	}
	if Unavailable.Available() || !Percentage(0).Available() {
		t.Fatal("availability mismatch")
	}
}
