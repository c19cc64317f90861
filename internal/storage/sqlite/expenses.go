package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/money"
	"github.com/finledger/finledger/internal/storage"
)

// CreateExpense inserts a new expense row, assigning ID and CreatedAt.
// A dangling category_id surfaces as storage.ErrConstraint.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, title, amount_cents, category_id, expense_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Title, int64(expense.Amount),
		nullable(expense.CategoryID), expense.ExpenseDate.String(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", mapErr(err))
	}
	return nil
}

// ListExpenses returns all expense rows owned by userID in insertion order.
func (s *Store) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, amount_cents, category_id, expense_date, created_at
		FROM expenses WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense replaces every mutable field on the expense owned by userID.
func (s *Store) UpdateExpense(ctx context.Context, userID, id string, expense *models.Expense) (*models.Expense, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses SET title = ?, amount_cents = ?, category_id = ?, expense_date = ?
		WHERE id = ? AND user_id = ?`,
		expense.Title, int64(expense.Amount), nullable(expense.CategoryID),
		expense.ExpenseDate.String(), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", mapErr(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	} else if n == 0 {
		return nil, storage.ErrNotFound
	}
	return s.getExpense(ctx, userID, id)
}

// DeleteExpense removes the expense owned by userID and returns its prior state.
func (s *Store) DeleteExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	expense, err := s.getExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	return expense, nil
}

func (s *Store) getExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, amount_cents, category_id, expense_date, created_at
		FROM expenses WHERE id = ? AND user_id = ?`, id, userID)

	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return expense, err
}

func scanExpense(scan func(...any) error) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount int64
	var categoryID sql.NullString
	var expenseDate string

	if err := scan(&expense.ID, &expense.UserID, &expense.Title, &amount, &categoryID, &expenseDate, &expense.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.Amount = money.Cents(amount)
	expense.CategoryID = fromNullable(categoryID)

	date, err := models.ParseDate(expenseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense date: %w", err)
	}
	expense.ExpenseDate = date
	return expense, nil
}
