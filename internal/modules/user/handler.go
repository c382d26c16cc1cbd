package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
	"github.com/suplefit/storefront-api/internal/platform/identity"
	"github.com/suplefit/storefront-api/internal/platform/web"
)

// TokenIssuer signs bearer tokens for freshly registered accounts. Implemented
// by the auth service.
type TokenIssuer interface {
	IssueToken(u *User) (string, error)
}

type Handler struct {
	service Service
	tokens  TokenIssuer
}

func NewHandler(service Service, tokens TokenIssuer) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// RegisterRoutes mounts the public registration route and the authenticated
// profile routes.
func (h *Handler) RegisterRoutes(router *chi.Mux, authenticate func(http.Handler) http.Handler) {
	router.Post("/users/register", h.register)
	router.Route("/users/profile", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.getProfile)
		r.Put("/", h.updateProfile)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	u, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		web.RespondError(w, err)
		return
	}

	token, err := h.tokens.IssueToken(u)
	if err != nil {
		web.RespondError(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, struct {
		Token string  `json:"token"`
		User  Summary `json:"user"`
	}{Token: token, User: u.Summary()})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}

	u, err := h.service.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, u)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), caller.UserID, req.Name, req.Email)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, u.Summary())
}
