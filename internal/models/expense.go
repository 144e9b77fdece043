package models

import "github.com/shopspring/decimal"

// Expense represents an amount paid by one person on behalf of several.
// The amount is split evenly across SplitBetween; weighted shares are not
// supported.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is a human-readable label (e.g. "Groceries", "Dinner").
	Description string `json:"description"`

	// Amount is the total paid, positive, two-decimal monetary precision.
	Amount decimal.Decimal `json:"amount"`

	// PaidByID is the id of the person who fronted the money.
	PaidByID string `json:"paid_by_id"`

	// SplitBetween lists the ids of everyone sharing the cost, possibly
	// including the payer. Must contain at least one id.
	SplitBetween []string `json:"split_between"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}
