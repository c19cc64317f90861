package models

import "github.com/finledger/finledger/internal/money"

// Income is a single money-in record.
type Income struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Amount is the received amount in cents.
	Amount money.Cents `json:"amount"`

	// Source describes where the money came from (salary, gift, ...).
	Source *string `json:"source,omitempty"`

	// ReceivedDate is the calendar date the income arrived.
	ReceivedDate Date `json:"received_date"`

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64 `json:"created_at"`
}
