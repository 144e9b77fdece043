package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jperaza/divvy/internal/models"
)

// ErrNoParticipants is returned when an expense has an empty SplitBetween
// list. Callers are supposed to reject such expenses at the boundary; the
// engine refuses them too rather than divide by zero.
var ErrNoParticipants = errors.New("expense has no participants")

// balanceSheet tracks the net balance per person id for one engine run.
// Positive means owed money, negative means owes money.
//
// Iteration order is explicit: known people in input order first, then
// unknown ids in first-seen order. Go map iteration is randomized, and the
// engine guarantees byte-identical output for identical input, so order can
// never come from the map itself.
type balanceSheet struct {
	order  []string
	totals map[string]decimal.Decimal
}

// entry is one row of the sheet: a person id and their net balance.
type entry struct {
	id      string
	balance decimal.Decimal
}

// newBalanceSheet seeds a zero balance for every known person, so people
// with no expenses still appear (and are filtered out after rounding).
func newBalanceSheet(people []models.Person) *balanceSheet {
	s := &balanceSheet{totals: make(map[string]decimal.Decimal, len(people))}
	for _, p := range people {
		s.ensure(p.ID)
	}
	return s
}

// ensure returns the balance for id, initializing it to zero on first sight.
// This is the only way ids enter the sheet, which makes the default-zero
// behavior for unknown ids an explicit contract rather than a map accident.
func (s *balanceSheet) ensure(id string) decimal.Decimal {
	if v, ok := s.totals[id]; ok {
		return v
	}
	s.order = append(s.order, id)
	s.totals[id] = decimal.Zero
	return decimal.Zero
}

// add applies a signed delta to the balance for id.
func (s *balanceSheet) add(id string, delta decimal.Decimal) {
	s.totals[id] = s.ensure(id).Add(delta)
}

// entries returns the sheet rows in insertion order.
func (s *balanceSheet) entries() []entry {
	out := make([]entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, entry{id: id, balance: s.totals[id]})
	}
	return out
}

// accumulate computes net balances across all expenses, in input order.
// For each expense the payer is credited the full amount and every
// participant is debited an equal share; a payer who is also a participant
// nets out to "paid for myself and others" accounting.
func accumulate(expenses []models.Expense, people []models.Person) (*balanceSheet, error) {
	sheet := newBalanceSheet(people)
	for _, e := range expenses {
		if len(e.SplitBetween) == 0 {
			return nil, fmt.Errorf("expense %q (%s): %w", e.Description, e.ID, ErrNoParticipants)
		}
		share := e.Amount.Div(decimal.NewFromInt(int64(len(e.SplitBetween))))
		sheet.add(e.PaidByID, e.Amount)
		for _, id := range e.SplitBetween {
			sheet.add(id, share.Neg())
		}
	}
	return sheet, nil
}
