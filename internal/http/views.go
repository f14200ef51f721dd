package http

import (
	"budgety/internal/core"
)

// Template data. Amounts are formatted here so templates stay logic free.
type (
	budgetView struct {
		Budget     string
		Income     string
		Expense    string
		Percentage string
		// OOB marks the header for an out-of-band swap.
		OOB bool
	}

	entryView struct {
		ItemID      string
		Description string
		Amount      string
		Percentage  string
		Expense     bool
		// List is the id of the list the row belongs to.
		List string
	}

	indexView struct {
		Budget   budgetView
		Income   []entryView
		Expenses []entryView
	}
)

func listID(c core.Category) string {
	if c == core.Expense {
		return "expenses-list"
	}
	return "income-list"
}

func newBudgetView(b core.Budget, currency string, oob bool) budgetView {
	sign := "+ "
	if b.Budget.Cents < 0 {
		sign = "- "
	}
	return budgetView{
		Budget:     sign + core.Money{Cents: abs(b.Budget.Cents)}.Format(currency),
		Income:     "+ " + b.TotalIncome.Format(currency),
		Expense:    "- " + b.TotalExpense.Format(currency),
		Percentage: b.Percentage.String(),
		OOB:        oob,
	}
}

func newEntryView(e core.Entry, currency string) entryView {
	sign := "+ "
	if e.IsExpense() {
		sign = "- "
	}
	return entryView{
		ItemID:      e.ItemID(),
		Description: e.Description,
		Amount:      sign + e.Amount.Format(currency),
		Percentage:  e.Percentage.String(),
		Expense:     e.IsExpense(),
		List:        listID(e.Category),
	}
}

func percentageLabels(ps []core.Percentage) []string {
	labels := make([]string, len(ps))
	for i, p := range ps {
		labels[i] = p.String()
	}
	return labels
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
