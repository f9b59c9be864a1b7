package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopartsfinder/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	service Service
	auth    *middleware.Auth
}

func NewHandler(service Service, auth *middleware.Auth) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.With(h.auth.Require).Post("/api/v1/checkout", h.checkout)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	receipt, err := h.service.Checkout(r.Context(), identity.UserID, identity.UserID)
	if err != nil {
		var shortage *ShortageError
		switch {
		case errors.As(err, &shortage):
			respond(w, http.StatusConflict, map[string]interface{}{
				"error":     err.Error(),
				"shortages": shortage.Shortages,
			})
		case errors.Is(err, ErrEmptyCart):
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusCreated, receipt)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
