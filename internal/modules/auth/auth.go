package auth

import (
	"context"

	"github.com/suplefit/storefront-api/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a bearer token with the account.
	Login(ctx context.Context, email, password string) (string, *user.User, error)

	// IssueToken signs a bearer token for an already-verified account.
	IssueToken(u *user.User) (string, error)

	// ParseToken validates a bearer token and returns the subject user id.
	ParseToken(token string) (string, error)
}

