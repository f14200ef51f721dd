package app

import (
	"errors"
	"strconv"
	"strings"

	"budgety/internal/core"
)

// ErrInvalidItemID is returned for row identifiers that are not of the form
// "<category>-<id>".
var ErrInvalidItemID = errors.New("invalid item id")

// Input is one add request read from the form.
type Input struct {
	Category    core.Category
	Description string
	Amount      core.Money
}

// ParseInput converts raw form values. It never fails: an unparsable amount
// becomes zero and an unknown type is kept as is, so that Valid reports the
// input as unusable and the add is skipped.
func ParseInput(typ, description, value string) Input {
	in := Input{
		Category:    core.Category(strings.TrimSpace(typ)),
		Description: strings.TrimSpace(description),
	}
	if c, err := core.ParseCategory(typ); err == nil {
		in.Category = c
	}
	if cents, err := core.ParseDecimalToCents(value); err == nil {
		in.Amount = core.Money{Cents: cents}
	}
	return in
}

// Valid reports whether the ledger will accept the input. It applies the
// same rules as core.Entry.Validate so that rejected input is ignored rather
// than reported as a failure.
func (in Input) Valid() bool {
	e := core.Entry{Category: in.Category, Description: in.Description, Amount: in.Amount}
	return e.Validate() == nil
}

// ParseItemID splits a row identifier such as "inc-3" into its category and
// ledger id.
func ParseItemID(itemID string) (core.Category, int, error) {
	prefix, num, ok := strings.Cut(strings.TrimSpace(itemID), "-")
	if !ok {
		return "", 0, ErrInvalidItemID
	}
	category := core.Category(prefix)
	if !category.Valid() {
		return "", 0, ErrInvalidItemID
	}
	id, err := strconv.Atoi(num)
	if err != nil || id < 0 {
		return "", 0, ErrInvalidItemID
	}
	return category, id, nil
}
