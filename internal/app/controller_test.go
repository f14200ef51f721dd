package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgety/internal/core"
	"budgety/internal/ledger"
	"budgety/internal/log"
)

type recordingSink struct {
	budgets     []core.Budget
	added       []core.Entry
	deleted     []string
	percentages [][]core.Percentage
	clears      int
}

func (s *recordingSink) DisplayBudget(b core.Budget) { s.budgets = append(s.budgets, b) }
func (s *recordingSink) AddListItem(e core.Entry) { s.added = append(s.added, e) }
func (s *recordingSink) DeleteListItem(id string) { s.deleted = append(s.deleted, id) }
func (s *recordingSink) DisplayPercentages(p []core.Percentage) { s.percentages = append(s.percentages, p) }
func (s *recordingSink) ClearFields() { s.clears++ }

func (s *recordingSink) lastBudget() core.Budget { return s.budgets[len(s.budgets)-1] }

func newController() *Controller {
	return NewController(ledger.New(), log.Discard())
}

func add(t *testing.T, c *Controller, sink DisplaySink, typ, desc, value string) (core.Entry, bool) {
	t.Helper()
	e, ok, err := c.AddItem(context.Background(), StaticInput(ParseInput(typ, desc, value)), sink)
	require.NoError(t, err)
	return e, ok
}

func TestInitDisplaysEmptyBudget(t *testing.T) {
	c := newController()
	sink := &recordingSink{}

	c.Init(sink)

	require.Len(t, sink.budgets, 1)
	assert.Equal(t, core.EmptyBudget(), sink.budgets[0])
	assert.Equal(t, "---", sink.budgets[0].Percentage.String())
}

func TestAddItemUpdatesDisplay(t *testing.T) {
	c := newController()
	sink := &recordingSink{}

	e, ok := add(t, c, sink, "inc", "Salary", "1000")
	require.True(t, ok)
	assert.Equal(t, "inc-0", e.ItemID())
	assert.Equal(t, 1, sink.clears)
	assert.Equal(t, int64(100000), sink.lastBudget().Budget.Cents)

	e, ok = add(t, c, sink, "exp", "Rent", "200")
	require.True(t, ok)
	assert.Equal(t, "exp-0", e.ItemID())
	assert.Equal(t, 2, sink.clears)

	b := sink.lastBudget()
	assert.Equal(t, int64(80000), b.Budget.Cents)
	assert.Equal(t, int64(100000), b.TotalIncome.Cents)
	assert.Equal(t, int64(20000), b.TotalExpense.Cents)
	assert.Equal(t, core.Percentage(20), b.Percentage)
	assert.Equal(t, []core.Percentage{20}, sink.percentages[len(sink.percentages)-1])
	assert.Len(t, sink.added, 2)
}

func TestAddItemIgnoresInvalidInput(t *testing.T) {
	tests := []struct {
		name             string
		typ, desc, value string
	}{
		{"empty description", "inc", "", "10"},
		{"blank description", "exp", "   ", "10"},
		{"empty amount", "inc", "Salary", ""},
		{"zero amount", "inc", "Salary", "0"},
		{"negative amount", "exp", "Rent", "-5"},
		{"not a number", "exp", "Rent", "abc"},
		{"unknown type", "sav", "Piggy", "10"},
		{"description too long", "exp", strings.Repeat("x", 201), "10"},
		{"multi-byte description too long", "exp", strings.Repeat("€", 201), "10"},
		{"amount above cap", "inc", "Lottery", "100000000000.01"},
		{"amount overflowing int64", "inc", "Big", "92233720368547758.07"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newController()
			sink := &recordingSink{}

			_, ok := add(t, c, sink, tc.typ, tc.desc, tc.value)
			assert.False(t, ok)
			assert.Empty(t, sink.added)
			assert.Empty(t, sink.budgets)
			assert.Zero(t, sink.clears)
			assert.Equal(t, int64(1), c.Stats().InputsIgnored)
		})
	}
}

func TestAddItemInputError(t *testing.T) {
	c := newController()
	sink := &recordingSink{}
	boom := errors.New("form gone")

	_, ok, err := c.AddItem(context.Background(), InputFunc(func(context.Context) (Input, error) {
		return Input{}, boom
	}), sink)

	require.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.Empty(t, sink.added)
}

func TestDeleteItem(t *testing.T) {
	c := newController()
	sink := &recordingSink{}
	add(t, c, sink, "inc", "Salary", "1000")
	add(t, c, sink, "exp", "Rent", "300")
	add(t, c, sink, "exp", "Food", "100")

	require.NoError(t, c.DeleteItem(context.Background(), "exp-0", sink))

	assert.Equal(t, []string{"exp-0"}, sink.deleted)
	b := sink.lastBudget()
	assert.Equal(t, int64(90000), b.Budget.Cents)
	assert.Equal(t, core.Percentage(10), b.Percentage)
	assert.Equal(t, []core.Percentage{10}, sink.percentages[len(sink.percentages)-1])

	entries := c.Entries(core.Expense)
	require.Len(t, entries, 1)
	assert.Equal(t, "Food", entries[0].Description)
	assert.Equal(t, Stats{EntriesAdded: 3, EntriesDeleted: 1}, c.Stats())
}

func TestDeleteItemEdgeCases(t *testing.T) {
	c := newController()
	sink := &recordingSink{}

	require.NoError(t, c.DeleteItem(context.Background(), "", sink))
	assert.Empty(t, sink.deleted)

	err := c.DeleteItem(context.Background(), "bogus", sink)
	require.ErrorIs(t, err, ErrInvalidItemID)
	assert.Empty(t, sink.deleted)

	// an id the ledger never issued still clears the row
	require.NoError(t, c.DeleteItem(context.Background(), "inc-7", sink))
	assert.Equal(t, []string{"inc-7"}, sink.deleted)
	assert.Equal(t, core.Unavailable, sink.lastBudget().Percentage)
	assert.Zero(t, c.Stats().EntriesDeleted)
}

func TestPercentagesWithoutIncome(t *testing.T) {
	c := newController()
	sink := &recordingSink{}
	add(t, c, sink, "exp", "Rent", "200")

	b := c.Budget()
	assert.Equal(t, int64(-20000), b.Budget.Cents)
	assert.Equal(t, core.Unavailable, b.Percentage)
	assert.Equal(t, []core.Percentage{core.Unavailable}, c.Percentages())
}

func TestConcurrentAdds(t *testing.T) {
	c := newController()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = c.AddItem(context.Background(), StaticInput(ParseInput("exp", "x", "1")), &recordingSink{})
		}()
	}
	wg.Wait()

	entries := c.Entries(core.Expense)
	require.Len(t, entries, 50)
	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
	assert.Equal(t, int64(5000), c.Budget().TotalExpense.Cents)
}
