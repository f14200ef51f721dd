package core

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Unavailable marks a percentage that cannot be computed because there is no
// income to compare against. Valid percentages are always >= 0.
const Unavailable Percentage = -1

var hundred = decimal.NewFromInt(100)

// Percentage is a whole-number percentage or Unavailable.
type Percentage int

func (p Percentage) Available() bool { return p >= 0 }

// String renders the percentage the way the page shows it: a zero or
// unavailable value is displayed as "---".
func (p Percentage) String() string {
	if p > 0 {
		return strconv.Itoa(int(p)) + "%"
	}
	return "---"
}

// PercentOf returns part as a rounded percentage of whole, rounding halves
// up. A non-positive whole yields Unavailable.
func PercentOf(part, whole Money) Percentage {
	if whole.Cents <= 0 {
		return Unavailable
	}
	ratio := decimal.NewFromInt(part.Cents).Mul(hundred).Div(decimal.NewFromInt(whole.Cents))
	return Percentage(ratio.Round(0).IntPart())
}

// Budget is the read-only projection shown in the page header.
type Budget struct {
	Budget       Money
	TotalIncome  Money
	TotalExpense Money
	Percentage   Percentage
}

// EmptyBudget is what the page shows before anything has been entered.
func EmptyBudget() Budget {
	return Budget{Percentage: Unavailable}
}
