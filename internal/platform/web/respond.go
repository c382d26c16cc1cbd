// Package web holds the JSON response helpers shared by all HTTP handlers.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// errorBody is the error envelope every endpoint returns.
type errorBody struct {
	Message string `json:"message"`
}

// RespondError translates err's kind into an HTTP status and writes the
// {message} envelope.
func RespondError(w http.ResponseWriter, err error) {
	Respond(w, statusFor(err), errorBody{Message: apperr.MessageOf(err)})
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.BusinessRule:
		return http.StatusBadRequest
	case apperr.AuthFailure:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondForbidden writes a 403 {message} envelope. Role denial is the one
// auth failure that is not a 401.
func RespondForbidden(w http.ResponseWriter, message string) {
	Respond(w, http.StatusForbidden, errorBody{Message: message})
}
