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

// CreateUser inserts a new user, assigning ID and CreatedAt.
// Duplicate email or phone surfaces as storage.ErrConstraint.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, phone, email, password_hash, address, profile_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Phone, user.Email, user.PasswordHash,
		nullable(user.Address), nullable(user.ProfileImage), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapErr(err))
	}
	return nil
}

// GetUserByID retrieves a user by id. Unscoped by design: the access gate
// resolves token subjects through this lookup.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, phone, email, password_hash, address, profile_image, created_at FROM users WHERE id = ?", id)
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, phone, email, password_hash, address, profile_image, created_at FROM users WHERE email = ?", email)
}

func (s *Store) getUser(ctx context.Context, query, arg string) (*models.User, error) {
	user := &models.User{}
	var address, profileImage sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.PasswordHash,
		&address, &profileImage, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Address = fromNullable(address)
	user.ProfileImage = fromNullable(profileImage)
	return user, nil
}

// DeleteUser removes a user and, through the schema's cascades, all of their
// incomes, expenses, categories and bill reminders. Returns the prior row.
func (s *Store) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}
