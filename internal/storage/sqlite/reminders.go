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

// CreateBillReminder inserts a new bill reminder row, assigning ID and
// CreatedAt and defaulting an empty status to pending.
func (s *Store) CreateBillReminder(ctx context.Context, reminder *models.BillReminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt == 0 {
		reminder.CreatedAt = time.Now().Unix()
	}
	if reminder.Status == "" {
		reminder.Status = models.ReminderStatusPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bill_reminders (id, user_id, title, amount_cents, due_date, repeat_cycle, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reminder.ID, reminder.UserID, reminder.Title, int64(reminder.Amount),
		reminder.DueDate.String(), nullable(reminder.RepeatCycle), reminder.Status,
		nullable(reminder.Notes), reminder.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill reminder: %w", mapErr(err))
	}
	return nil
}

// ListBillReminders returns all bill reminder rows owned by userID in
// insertion order.
func (s *Store) ListBillReminders(ctx context.Context, userID string) ([]models.BillReminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, amount_cents, due_date, repeat_cycle, status, notes, created_at
		FROM bill_reminders WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill reminders: %w", err)
	}
	defer rows.Close()

	reminders := []models.BillReminder{}
	for rows.Next() {
		reminder, err := scanBillReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill reminders: %w", err)
	}
	return reminders, nil
}

// UpdateBillReminder replaces every mutable field on the reminder owned by
// userID.
func (s *Store) UpdateBillReminder(ctx context.Context, userID, id string, reminder *models.BillReminder) (*models.BillReminder, error) {
	status := reminder.Status
	if status == "" {
		status = models.ReminderStatusPending
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE bill_reminders SET title = ?, amount_cents = ?, due_date = ?, repeat_cycle = ?, status = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		reminder.Title, int64(reminder.Amount), reminder.DueDate.String(),
		nullable(reminder.RepeatCycle), status, nullable(reminder.Notes),
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bill reminder: %w", mapErr(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update bill reminder: %w", err)
	} else if n == 0 {
		return nil, storage.ErrNotFound
	}
	return s.getBillReminder(ctx, userID, id)
}

// DeleteBillReminder removes the reminder owned by userID and returns its
// prior state.
func (s *Store) DeleteBillReminder(ctx context.Context, userID, id string) (*models.BillReminder, error) {
	reminder, err := s.getBillReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM bill_reminders WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete bill reminder: %w", err)
	}
	return reminder, nil
}

func (s *Store) getBillReminder(ctx context.Context, userID, id string) (*models.BillReminder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, amount_cents, due_date, repeat_cycle, status, notes, created_at
		FROM bill_reminders WHERE id = ? AND user_id = ?`, id, userID)

	reminder, err := scanBillReminder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return reminder, err
}

func scanBillReminder(scan func(...any) error) (*models.BillReminder, error) {
	reminder := &models.BillReminder{}
	var amount int64
	var repeatCycle, notes sql.NullString
	var dueDate string

	if err := scan(&reminder.ID, &reminder.UserID, &reminder.Title, &amount, &dueDate,
		&repeatCycle, &reminder.Status, &notes, &reminder.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bill reminder: %w", err)
	}

	reminder.Amount = money.Cents(amount)
	reminder.RepeatCycle = fromNullable(repeatCycle)
	reminder.Notes = fromNullable(notes)

	date, err := models.ParseDate(dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill reminder date: %w", err)
	}
	reminder.DueDate = date
	return reminder, nil
}
