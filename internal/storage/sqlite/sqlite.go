// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/finledger/finledger/internal/money"
	"github.com/finledger/finledger/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Ensure Store implements storage.Store.
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a Store backed by the database at dbPath, creating parent
// directories and running schema migrations. Pass ":memory:" for an
// ephemeral database.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// The _pragma DSN option applies to every connection the pool opens;
	// foreign keys must be on for the cascade and set-null behavior.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	// Pure Go driver (no CGO).
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases coherent and sidesteps
	// SQLite write-lock contention.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// runMigrations applies the embedded SQL migrations to db.
func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SumIncome returns the integer-cent total of all income rows for userID.
func (s *Store) SumIncome(ctx context.Context, userID string) (money.Cents, error) {
	return s.sumCents(ctx, "SELECT COALESCE(SUM(amount_cents), 0) FROM incomes WHERE user_id = ?", userID)
}

// SumExpense returns the integer-cent total of all expense rows for userID.
func (s *Store) SumExpense(ctx context.Context, userID string) (money.Cents, error) {
	return s.sumCents(ctx, "SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ?", userID)
}

func (s *Store) sumCents(ctx context.Context, query, userID string) (money.Cents, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum amounts: %w", err)
	}
	return money.Cents(total), nil
}

// mapErr translates driver-level errors into the storage error taxonomy.
func mapErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %v", storage.ErrConstraint, err)
	}
	return err
}

// nullable converts a pointer field to its sql.NullString representation.
func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullable converts a scanned sql.NullString back to a pointer field.
func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
