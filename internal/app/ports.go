package app

import (
	"context"

	"budgety/internal/core"
)

// Ports for the presentation layer. The controller talks to the page (or
// terminal) only through these; they never see the ledger.
type (
	// InputSource supplies the values currently entered in the add form.
	InputSource interface {
		Input(ctx context.Context) (Input, error)
	}

	// DisplaySink reflects ledger changes in the presentation layer.
	DisplaySink interface {
		DisplayBudget(b core.Budget)
		AddListItem(e core.Entry)
		// DeleteListItem removes the row with the given item id ("exp-3").
		DeleteListItem(itemID string)
		// DisplayPercentages receives one percentage per displayed expense
		// row, in insertion order.
		DisplayPercentages(p []core.Percentage)
		ClearFields()
	}
)

// InputFunc adapts a function to InputSource.
type InputFunc func(ctx context.Context) (Input, error)

func (f InputFunc) Input(ctx context.Context) (Input, error) { return f(ctx) }

// StaticInput is an InputSource that always returns the same values.
func StaticInput(in Input) InputSource {
	return InputFunc(func(context.Context) (Input, error) { return in, nil })
}
