package models

import "github.com/shopspring/decimal"

// Settlement is a single payment instruction produced by the settlement
// engine: From must pay Amount to To. Settlements have no independent
// lifecycle; the whole list is recomputed and replaced whenever the people
// or expense lists change.
type Settlement struct {
	// From is the id of the person who owes money.
	From string `json:"from"`

	// To is the id of the person who is owed money.
	To string `json:"to"`

	// Amount is the payment amount, always >= 0.01 and rounded to two
	// decimal places.
	Amount decimal.Decimal `json:"amount"`
}
