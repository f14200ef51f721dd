// Package app wires the ledger to a presentation layer.
//
// The Controller owns one ledger and mediates every call between it and the
// page: it reads input through an InputSource, mutates the ledger and pushes
// the results to a DisplaySink. Operations are serialized, so the ledger
// sees one event at a time however many requests the host serves.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"budgety/internal/core"
	"budgety/internal/ledger"
	"budgety/internal/log"
)

// Stats counts what the controller has done since start.
type Stats struct {
	EntriesAdded   int64
	EntriesDeleted int64
	InputsIgnored  int64
}

type Controller struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	logger *log.Logger

	added   atomic.Int64
	deleted atomic.Int64
	ignored atomic.Int64
}

func NewController(l *ledger.Ledger, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Discard()
	}
	return &Controller{
		ledger: l,
		logger: logger.WithComponent(log.ComponentLedger),
	}
}

// Init resets the budget display before any entry exists.
func (c *Controller) Init(sink DisplaySink) {
	c.logger.Info("Application started")
	sink.DisplayBudget(core.EmptyBudget())
}

// AddItem reads the form, adds the entry and refreshes the display. Input
// the ledger would reject (an empty or over-long description, an amount
// that is not positive or above core.MaxAmountCents) is ignored, in which
// case the returned bool is false and nothing is displayed.
func (c *Controller) AddItem(ctx context.Context, src InputSource, sink DisplaySink) (core.Entry, bool, error) {
	in, err := src.Input(ctx)
	if err != nil {
		return core.Entry{}, false, fmt.Errorf("read input: %w", err)
	}
	if !in.Valid() {
		c.ignored.Add(1)
		c.logger.DebugContext(ctx, "Input ignored",
			log.FieldCategory, string(in.Category),
			log.FieldDescription, in.Description,
			log.FieldAmountCents, in.Amount.Cents)
		return core.Entry{}, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.ledger.AddEntry(in.Category, in.Description, in.Amount)
	if err != nil {
		// Valid input is accepted by the ledger; anything else is a bug in
		// one of the two validations.
		c.ignored.Add(1)
		return core.Entry{}, false, fmt.Errorf("add entry: %w", err)
	}
	c.added.Add(1)

	sink.AddListItem(entry)
	sink.ClearFields()
	b := c.updateBudget(sink)
	c.updatePercentages(sink)

	c.logger.LogFields(ctx, slog.LevelInfo, "Entry added", log.NewFields().
		WithEntry(entry.ItemID(), string(entry.Category), entry.Description, entry.Amount.Cents).
		WithBudget(b.Budget.Cents, int(b.Percentage)).
		WithOperation(log.OpCreate))

	return entry, true, nil
}

// DeleteItem removes the entry behind a row identifier such as "exp-0" and
// refreshes the display. An empty identifier is ignored; deleting an id the
// ledger does not know still removes the row.
func (c *Controller) DeleteItem(ctx context.Context, itemID string, sink DisplaySink) error {
	if itemID == "" {
		return nil
	}
	category, id, err := ParseItemID(itemID)
	if err != nil {
		return fmt.Errorf("delete %q: %w", itemID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ledger.DeleteEntry(category, id) {
		c.deleted.Add(1)
	}

	sink.DeleteListItem(itemID)
	b := c.updateBudget(sink)
	c.updatePercentages(sink)

	c.logger.LogFields(ctx, slog.LevelInfo, "Entry deleted", log.NewFields().
		WithBudget(b.Budget.Cents, int(b.Percentage)).
		WithItemID(itemID).
		WithOperation(log.OpDelete))

	return nil
}

// Budget returns fresh totals.
func (c *Controller) Budget() core.Budget {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.RecalculateTotals()
	return c.ledger.Snapshot()
}

// Entries returns the entries of a category with fresh percentages.
func (c *Controller) Entries(category core.Category) []core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.RecalculateTotals()
	c.ledger.RecalculateExpensePercentages()
	return c.ledger.Entries(category)
}

// Percentages returns fresh expense percentages in insertion order.
func (c *Controller) Percentages() []core.Percentage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.RecalculateTotals()
	c.ledger.RecalculateExpensePercentages()
	return c.ledger.ExpensePercentages()
}

func (c *Controller) Stats() Stats {
	return Stats{
		EntriesAdded:   c.added.Load(),
		EntriesDeleted: c.deleted.Load(),
		InputsIgnored:  c.ignored.Load(),
	}
}

func (c *Controller) updateBudget(sink DisplaySink) core.Budget {
	c.ledger.RecalculateTotals()
	b := c.ledger.Snapshot()
	sink.DisplayBudget(b)
	return b
}

func (c *Controller) updatePercentages(sink DisplaySink) {
	c.ledger.RecalculateExpensePercentages()
	sink.DisplayPercentages(c.ledger.ExpensePercentages())
}
