package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/storage"
)

// CreateCategory inserts a new category row, assigning ID and CreatedAt.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		category.ID, category.UserID, category.Name, nullable(category.Color), category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapErr(err))
	}
	return nil
}

// ListCategories returns all category rows owned by userID in insertion order.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, color, created_at
		FROM categories WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory replaces every mutable field on the category owned by userID.
func (s *Store) UpdateCategory(ctx context.Context, userID, id string, category *models.Category) (*models.Category, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, color = ?
		WHERE id = ? AND user_id = ?`,
		category.Name, nullable(category.Color), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", mapErr(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	} else if n == 0 {
		return nil, storage.ErrNotFound
	}
	return s.getCategory(ctx, userID, id)
}

// DeleteCategory removes the category owned by userID and returns its prior
// state. Expenses referencing it keep their rows; the schema nulls their
// category_id.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) (*models.Category, error) {
	category, err := s.getCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}
	return category, nil
}

func (s *Store) getCategory(ctx context.Context, userID, id string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, color, created_at
		FROM categories WHERE id = ? AND user_id = ?`, id, userID)

	category, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return category, err
}

func scanCategory(scan func(...any) error) (*models.Category, error) {
	category := &models.Category{}
	var color sql.NullString

	if err := scan(&category.ID, &category.UserID, &category.Name, &color, &category.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	category.Color = fromNullable(color)
	return category, nil
}
