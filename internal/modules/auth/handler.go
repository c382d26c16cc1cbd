package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suplefit/storefront-api/internal/modules/user"
	"github.com/suplefit/storefront-api/internal/platform/apperr"
	"github.com/suplefit/storefront-api/internal/platform/web"
)

// Handler exposes the login endpoint.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/users/login", h.login)
}

// loginResponse is the token envelope returned by login and registration.
type loginResponse struct {
	Token string       `json:"token"`
	User  user.Summary `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		web.RespondError(w, apperr.New(apperr.Validation, "email and password are required"))
		return
	}

	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, loginResponse{Token: token, User: u.Summary()})
}
