package auth

import (
	"context"

	"github.com/finledger/finledger/internal/models"
)

// Registration carries the fields needed to open an account.
type Registration struct {
	Name         string
	Phone        string
	Email        string
	Password     string
	Address      *string
	ProfileImage *string
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler layer.
type Authenticator interface {
	// Register creates a new user account. Uniqueness of email and phone is
	// left to the storage layer's constraints.
	Register(ctx context.Context, reg Registration) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements.
	ValidateCredential(credential string) error
}
