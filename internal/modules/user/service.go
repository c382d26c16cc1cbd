package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// Register creates a new customer account with a hashed password.
	Register(ctx context.Context, name, email, password string) (*User, error)

	// GetProfile returns the account for an authenticated user.
	GetProfile(ctx context.Context, userID string) (*User, error)

	// UpdateProfile changes the name and/or email. Empty fields are left
	// unchanged.
	UpdateProfile(ctx context.Context, userID string, name, email string) (*User, error)
}
