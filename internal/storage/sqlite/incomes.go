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

// CreateIncome inserts a new income row, assigning ID and CreatedAt.
func (s *Store) CreateIncome(ctx context.Context, income *models.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if income.CreatedAt == 0 {
		income.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incomes (id, user_id, amount_cents, source, received_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		income.ID, income.UserID, int64(income.Amount), nullable(income.Source),
		income.ReceivedDate.String(), income.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", mapErr(err))
	}
	return nil
}

// ListIncomes returns all income rows owned by userID in insertion order.
func (s *Store) ListIncomes(ctx context.Context, userID string) ([]models.Income, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount_cents, source, received_date, created_at
		FROM incomes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		income, err := scanIncome(rows.Scan)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, *income)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}
	return incomes, nil
}

// UpdateIncome replaces every mutable field on the income owned by userID.
func (s *Store) UpdateIncome(ctx context.Context, userID, id string, income *models.Income) (*models.Income, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE incomes SET amount_cents = ?, source = ?, received_date = ?
		WHERE id = ? AND user_id = ?`,
		int64(income.Amount), nullable(income.Source), income.ReceivedDate.String(),
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update income: %w", mapErr(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	} else if n == 0 {
		return nil, storage.ErrNotFound
	}
	return s.getIncome(ctx, userID, id)
}

// DeleteIncome removes the income owned by userID and returns its prior state.
func (s *Store) DeleteIncome(ctx context.Context, userID, id string) (*models.Income, error) {
	income, err := s.getIncome(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM incomes WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete income: %w", err)
	}
	return income, nil
}

func (s *Store) getIncome(ctx context.Context, userID, id string) (*models.Income, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount_cents, source, received_date, created_at
		FROM incomes WHERE id = ? AND user_id = ?`, id, userID)

	income, err := scanIncome(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return income, err
}

func scanIncome(scan func(...any) error) (*models.Income, error) {
	income := &models.Income{}
	var amount int64
	var source sql.NullString
	var receivedDate string

	if err := scan(&income.ID, &income.UserID, &amount, &source, &receivedDate, &income.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan income: %w", err)
	}

	income.Amount = money.Cents(amount)
	income.Source = fromNullable(source)

	date, err := models.ParseDate(receivedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan income date: %w", err)
	}
	income.ReceivedDate = date
	return income, nil
}
