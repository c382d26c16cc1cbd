package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
	"github.com/suplefit/storefront-api/internal/platform/identity"
	"github.com/suplefit/storefront-api/internal/platform/web"
)

// Handler exposes the cart HTTP endpoints. All routes require authentication.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, authenticate func(http.Handler) http.Handler) {
	router.Route("/cart", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.getCart)
		r.Post("/add", h.addItem)
		r.Put("/update", h.updateItem)
		r.Delete("/remove/{productId}", h.removeItem)
		r.Delete("/clear", h.clear)
	})
}

// itemRequest is the payload for add and update operations.
type itemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}
	c, err := h.service.GetCart(r.Context(), caller.UserID)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	c, err := h.service.AddItem(r.Context(), caller.UserID, req.ProductID, req.Quantity)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	c, err := h.service.UpdateItem(r.Context(), caller.UserID, req.ProductID, req.Quantity)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}
	c, err := h.service.RemoveItem(r.Context(), caller.UserID, chi.URLParam(r, "productId"))
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}
	c, err := h.service.Clear(r.Context(), caller.UserID)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}
