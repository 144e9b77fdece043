package models

// Person represents a member of the expense-sharing group.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// FullName is the display name of the person.
	FullName string `json:"full_name"`

	// BankName and AccountNumber are the payment destination shown next to
	// settlements so debtors know where to send money. Free-form text.
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`

	// PartnerID optionally references another person (e.g. a spouse).
	// It is only a settlement-routing hint: payments between partners are
	// listed before all others. A dangling or empty reference means
	// "no partner" and is never an error.
	PartnerID string `json:"partner_id,omitempty"`

	// CreatedAt is the Unix timestamp when the person was added.
	CreatedAt int64 `json:"created_at"`
}
