// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/money"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the handler layer.
//
// Semantics shared by every entity kind:
//
//   - Create fills in the ID and CreatedAt fields on the passed model.
//   - List returns every row owned by userID, eagerly materialized.
//   - Update is whole-record replacement: every mutable column is overwritten
//     with the given model's values, so omitted optional fields become null.
//   - Delete removes the row and returns its prior state.
//   - Update and Delete are scoped to userID; a row owned by someone else is
//     reported as ErrNotFound, indistinguishable from a missing row.
type Store interface {
	// CreateUser persists a new user account. Uniqueness of email and phone
	// is enforced by the store's constraints, surfaced as ErrConstraint.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by id. Unscoped: this is the lookup the
	// access gate resolves token subjects with.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, for login.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// DeleteUser removes a user and cascades deletion of all of their
	// incomes, expenses, categories and bill reminders.
	DeleteUser(ctx context.Context, id string) (*models.User, error)

	CreateIncome(ctx context.Context, income *models.Income) error
	ListIncomes(ctx context.Context, userID string) ([]models.Income, error)
	UpdateIncome(ctx context.Context, userID, id string, income *models.Income) (*models.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) (*models.Income, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, expense *models.Expense) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) (*models.Expense, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, userID, id string, category *models.Category) (*models.Category, error)
	// DeleteCategory nulls category_id on referencing expenses; it never
	// deletes them.
	DeleteCategory(ctx context.Context, userID, id string) (*models.Category, error)

	CreateBillReminder(ctx context.Context, reminder *models.BillReminder) error
	ListBillReminders(ctx context.Context, userID string) ([]models.BillReminder, error)
	UpdateBillReminder(ctx context.Context, userID, id string, reminder *models.BillReminder) (*models.BillReminder, error)
	DeleteBillReminder(ctx context.Context, userID, id string) (*models.BillReminder, error)

	// SumIncome returns the exact cent total of all income rows owned by
	// userID, zero if there are none.
	SumIncome(ctx context.Context, userID string) (money.Cents, error)

	// SumExpense returns the exact cent total of all expense rows owned by
	// userID, zero if there are none.
	SumExpense(ctx context.Context, userID string) (money.Cents, error)

	// Close releases any resources held by the store.
	Close() error
}
