package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"budgety/internal/core"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// PlainMarkdown prints markdown as is.
func PlainMarkdown(md string) (string, error) { return md, nil }

// GlamourRenderer styles markdown for the terminal, wrapping at width.
func GlamourRenderer(width int) (Renderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render, nil
}

type row struct {
	itemID      string
	description string
	amount      core.Money
}

// MarkdownSink mirrors the page in memory and renders it as markdown. It
// only knows what the controller told it.
type MarkdownSink struct {
	currency    string
	budget      core.Budget
	income      []row
	expenses    []row
	percentages []core.Percentage
}

func NewMarkdownSink(currency string) *MarkdownSink {
	return &MarkdownSink{currency: currency, budget: core.EmptyBudget()}
}

func (s *MarkdownSink) DisplayBudget(b core.Budget) { s.budget = b }

func (s *MarkdownSink) AddListItem(e core.Entry) {
	r := row{itemID: e.ItemID(), description: e.Description, amount: e.Amount}
	if e.IsExpense() {
		s.expenses = append(s.expenses, r)
		s.percentages = append(s.percentages, e.Percentage)
		return
	}
	s.income = append(s.income, r)
}

func (s *MarkdownSink) DeleteListItem(itemID string) {
	match := func(r row) bool { return r.itemID == itemID }
	s.income = slices.DeleteFunc(s.income, match)
	if i := slices.IndexFunc(s.expenses, match); i >= 0 {
		s.expenses = slices.Delete(s.expenses, i, i+1)
		if i < len(s.percentages) {
			s.percentages = slices.Delete(s.percentages, i, i+1)
		}
	}
}

func (s *MarkdownSink) DisplayPercentages(p []core.Percentage) {
	s.percentages = slices.Clone(p)
}

// ClearFields has nothing to clear on a terminal.
func (s *MarkdownSink) ClearFields() {}

// Markdown renders the current page.
func (s *MarkdownSink) Markdown() string {
	var b strings.Builder
	b.WriteString("# Available budget: " + s.signed(s.budget.Budget) + "\n\n")

	b.WriteString("| | Amount | % |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Income | + %s | |\n", s.budget.TotalIncome.Format(s.currency))
	fmt.Fprintf(&b, "| Expenses | - %s | %s |\n\n", s.budget.TotalExpense.Format(s.currency), s.budget.Percentage)

	b.WriteString("## " + core.Income.Label() + "\n\n")
	if len(s.income) == 0 {
		b.WriteString("_none_\n\n")
	} else {
		b.WriteString("| ID | Description | Amount |\n|---|---|---:|\n")
		for _, r := range s.income {
			fmt.Fprintf(&b, "| %s | %s | + %s |\n", r.itemID, escapeCell(r.description), r.amount.Format(s.currency))
		}
		b.WriteString("\n")
	}

	b.WriteString("## " + core.Expense.Label() + "\n\n")
	if len(s.expenses) == 0 {
		b.WriteString("_none_\n")
	} else {
		b.WriteString("| ID | Description | Amount | % |\n|---|---|---:|---:|\n")
		for i, r := range s.expenses {
			pct := core.Unavailable
			if i < len(s.percentages) {
				pct = s.percentages[i]
			}
			fmt.Fprintf(&b, "| %s | %s | - %s | %s |\n", r.itemID, escapeCell(r.description), r.amount.Format(s.currency), pct)
		}
	}
	return b.String()
}

func (s *MarkdownSink) signed(m core.Money) string {
	if m.Cents < 0 {
		return "- " + core.Money{Cents: -m.Cents}.Format(s.currency)
	}
	return "+ " + m.Format(s.currency)
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
