// Package identity carries the authenticated caller through request contexts.
// Handlers read it instead of any ambient per-request global.
package identity

import "context"

// Identity is the request-scoped authenticated caller.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Type   string
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool { return id.Type == "admin" }

type contextKey struct{}

// NewContext returns a context carrying the authenticated identity.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the authenticated identity from ctx.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
