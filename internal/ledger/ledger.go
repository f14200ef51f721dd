// Package ledger keeps the income and expense lines of a budget and derives
// totals, the remaining budget and spending percentages from them.
//
// Derived figures are never maintained incrementally: callers run
// RecalculateTotals (and then RecalculateExpensePercentages) after a change
// and before reading Snapshot or ExpensePercentages. A Ledger is not safe for
// concurrent use.
package ledger

import (
	"fmt"
	"slices"

	"budgety/internal/core"
)

// list holds the entries of one category in insertion order.
type list struct {
	entries []core.Entry
	nextID  int
	total   core.Money
}

// Ledger is the in-memory aggregate of one budget.
type Ledger struct {
	lists      map[core.Category]*list
	budget     core.Money
	percentage core.Percentage
}

// New returns an empty ledger.
func New() *Ledger {
	l := &Ledger{
		lists:      make(map[core.Category]*list),
		percentage: core.Unavailable,
	}
	for _, c := range core.Categories() {
		l.lists[c] = &list{}
	}
	return l
}

// AddEntry appends a new line to the given category and returns it.
//
// Ids start at 0 in each category and continue from the highest id ever
// assigned there, so an id is never handed out twice even after deletions.
func (l *Ledger) AddEntry(category core.Category, description string, amount core.Money) (core.Entry, error) {
	e := core.Entry{
		Category:    category,
		Description: description,
		Amount:      amount,
		Percentage:  core.Unavailable,
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, fmt.Errorf("add %s entry: %w", category, err)
	}

	lst := l.lists[category]
	e.ID = lst.nextID
	lst.nextID++
	lst.entries = append(lst.entries, e)
	return e, nil
}

// DeleteEntry removes the entry with the given id and reports whether one
// was removed. Unknown ids and categories are ignored.
func (l *Ledger) DeleteEntry(category core.Category, id int) bool {
	lst, ok := l.lists[category]
	if !ok {
		return false
	}
	idx := slices.IndexFunc(lst.entries, func(e core.Entry) bool { return e.ID == id })
	if idx == -1 {
		return false
	}
	lst.entries = slices.Delete(lst.entries, idx, idx+1)
	return true
}

// RecalculateTotals recomputes both category totals, the budget and the
// share of income spent.
func (l *Ledger) RecalculateTotals() {
	for _, lst := range l.lists {
		var sum core.Money
		for _, e := range lst.entries {
			sum = sum.Add(e.Amount)
		}
		lst.total = sum
	}

	income := l.lists[core.Income].total
	expense := l.lists[core.Expense].total
	l.budget = income.Sub(expense)
	l.percentage = core.PercentOf(expense, income)
}

// RecalculateExpensePercentages refreshes the percentage of every expense
// against the total income computed by the last RecalculateTotals.
func (l *Ledger) RecalculateExpensePercentages() {
	income := l.lists[core.Income].total
	expenses := l.lists[core.Expense].entries
	for i := range expenses {
		expenses[i].Percentage = core.PercentOf(expenses[i].Amount, income)
	}
}

// Snapshot returns the figures computed by the last RecalculateTotals.
func (l *Ledger) Snapshot() core.Budget {
	return core.Budget{
		Budget:       l.budget,
		TotalIncome:  l.lists[core.Income].total,
		TotalExpense: l.lists[core.Expense].total,
		Percentage:   l.percentage,
	}
}

// ExpensePercentages returns one percentage per expense, in insertion order.
func (l *Ledger) ExpensePercentages() []core.Percentage {
	expenses := l.lists[core.Expense].entries
	out := make([]core.Percentage, len(expenses))
	for i, e := range expenses {
		out[i] = e.Percentage
	}
	return out
}

// Entries returns a copy of the entries of a category in insertion order.
func (l *Ledger) Entries(category core.Category) []core.Entry {
	lst, ok := l.lists[category]
	if !ok {
		return nil
	}
	return slices.Clone(lst.entries)
}

// Len returns the number of entries in a category.
func (l *Ledger) Len(category core.Category) int {
	if lst, ok := l.lists[category]; ok {
		return len(lst.entries)
	}
	return 0
}
