package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
	"github.com/suplefit/storefront-api/internal/platform/identity"
	"github.com/suplefit/storefront-api/internal/platform/web"
)

// Handler exposes the order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, authenticate, requireAdmin func(http.Handler) http.Handler) {
	router.Route("/orders", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", h.placeOrder)
		r.Get("/my-orders", h.listMyOrders)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/all", h.listAllOrders)
			r.Put("/{id}/status", h.updateStatus)
		})
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}

	var req struct {
		ShippingAddress Address `json:"shippingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	o, err := h.service.PlaceOrder(r.Context(), caller.UserID, req.ShippingAddress)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, o)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		web.RespondError(w, apperr.New(apperr.AuthFailure, "missing bearer token"))
		return
	}

	orders, err := h.service.ListOrders(r.Context(), caller.UserID)
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, orders)
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAllOrders(r.Context())
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(req.Status))
	if err != nil {
		web.RespondError(w, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}
