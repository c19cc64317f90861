package models

// User represents a registered account. It is the ownership root for all
// ledger entities.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Phone is the user's phone number (unique across users).
	Phone string `json:"phonenumber"`

	// Email is the user's email address (unique across users).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Address is the user's postal address, if provided.
	Address *string `json:"address,omitempty"`

	// ProfileImage is a reference (URL or path) to the profile picture.
	ProfileImage *string `json:"profileimage,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
