// Package budget computes a user's budget snapshot from their ledger.
package budget

import (
	"context"
	"fmt"

	"github.com/finledger/finledger/internal/money"
	"github.com/finledger/finledger/internal/storage"
)

// Budget statuses.
const (
	StatusWithinBudget = "Within Budget"
	StatusOverBudget   = "Over Budget"
)

// Summary is a user's computed budget snapshot. All amounts are exact cents;
// they become floats only when the summary is serialized.
type Summary struct {
	// TotalIncome is the sum of all income amounts, zero if none.
	TotalIncome money.Cents `json:"total_income"`

	// TotalExpense is the sum of all expense amounts, zero if none.
	TotalExpense money.Cents `json:"total_expense"`

	// Remaining is TotalIncome minus TotalExpense; may be negative.
	Remaining money.Cents `json:"remaining_amount"`

	// Needed is how much the user is short: -Remaining when over budget,
	// zero otherwise.
	Needed money.Cents `json:"needed_amount"`

	// Status is StatusWithinBudget when Remaining >= 0, StatusOverBudget
	// otherwise.
	Status string `json:"status"`
}

// Aggregator derives budget summaries from a storage backend.
type Aggregator struct {
	store storage.Store
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store storage.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Summarize computes the budget snapshot for userID. The sums come from the
// store's integer-cent aggregates, so repeated insert/delete cycles cannot
// accumulate rounding drift.
func (a *Aggregator) Summarize(ctx context.Context, userID string) (*Summary, error) {
	totalIncome, err := a.store.SumIncome(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum incomes: %w", err)
	}

	totalExpense, err := a.store.SumExpense(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	remaining := totalIncome - totalExpense

	summary := &Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Remaining:    remaining,
		Status:       StatusWithinBudget,
	}
	if remaining.IsNegative() {
		summary.Needed = remaining.Abs()
		summary.Status = StatusOverBudget
	}
	return summary, nil
}
