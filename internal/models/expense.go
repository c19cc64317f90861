package models

import "github.com/finledger/finledger/internal/money"

// Expense is a single money-out record. It may reference one of the owner's
// categories; the reference is weak and survives category deletion as nil.
type Expense struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Title describes what the money was spent on.
	Title string `json:"title"`

	// Amount is the spent amount in cents.
	Amount money.Cents `json:"amount"`

	// CategoryID is the optional category this expense belongs to.
	// Nulled by storage when the category is deleted.
	CategoryID *string `json:"category_id,omitempty"`

	// ExpenseDate is the calendar date of the spend.
	ExpenseDate Date `json:"expense_date"`

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64 `json:"created_at"`
}
