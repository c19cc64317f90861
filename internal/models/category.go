package models

// Category is a user-defined expense label.
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Name is the category label, e.g. "Groceries".
	Name string `json:"name"`

	// Color is an optional display color (hex or name).
	Color *string `json:"color,omitempty"`

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64 `json:"created_at"`
}
