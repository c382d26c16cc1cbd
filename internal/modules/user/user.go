package user

import (
	"time"

	"github.com/google/uuid"
)

// User types. Admins may manage the catalog and order statuses.
const (
	TypeCustomer = "customer"
	TypeAdmin    = "admin"
)

// User represents an account in the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the public projection of a user returned by the auth and profile
// endpoints.
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Type  string    `json:"type"`
}

// Summary projects the user into its public shape.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Type: u.Type}
}
