package auth

import (
	"net/http"
	"strings"

	"github.com/suplefit/storefront-api/internal/modules/user"
	"github.com/suplefit/storefront-api/internal/platform/apperr"
	"github.com/suplefit/storefront-api/internal/platform/identity"
	"github.com/suplefit/storefront-api/internal/platform/web"
)

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	service  Service
	userRepo user.Repository
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(service Service, userRepo user.Repository) *Middleware {
	return &Middleware{service: service, userRepo: userRepo}
}

// Authenticate validates the Authorization header, resolves the account, and
// stores an Identity in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
			return
		}

		userID, err := m.service.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			web.RespondError(w, err)
			return
		}

		u, err := m.userRepo.GetUserByID(r.Context(), userID)
		if err != nil {
			web.RespondError(w, apperr.New(apperr.AuthFailure, "invalid or expired token"))
			return
		}

		caller := identity.Identity{
			UserID: u.ID.String(),
			Name:   u.Name,
			Email:  u.Email,
			Type:   u.Type,
		}
		next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), caller)))
	})
}

// RequireAdmin rejects callers whose identity lacks the admin role. Must run
// after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.FromContext(r.Context())
		if !ok {
			web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
			return
		}
		if !caller.IsAdmin() {
			web.RespondForbidden(w, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
