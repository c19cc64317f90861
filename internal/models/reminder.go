package models

import "github.com/finledger/finledger/internal/money"

// Bill reminder statuses.
const (
	ReminderStatusPending = "pending"
	ReminderStatusPaid    = "paid"
)

// BillReminder is an upcoming payment the user wants to be reminded about.
type BillReminder struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Title names the bill, e.g. "Rent".
	Title string `json:"title"`

	// Amount is the expected payment in cents.
	Amount money.Cents `json:"amount"`

	// DueDate is the calendar date the bill is due.
	DueDate Date `json:"due_date"`

	// RepeatCycle is an optional recurrence hint (monthly, weekly, ...).
	// Free-form; nothing schedules off it.
	RepeatCycle *string `json:"repeat_cycle,omitempty"`

	// Status is the payment state, defaulting to pending.
	Status string `json:"status"`

	// Notes holds optional free text.
	Notes *string `json:"notes,omitempty"`

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64 `json:"created_at"`
}
