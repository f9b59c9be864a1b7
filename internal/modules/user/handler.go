package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopartsfinder/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Handler exposes account administration endpoints.
type Handler struct {
	service Service
	auth    *middleware.Auth
}

func NewHandler(service Service, auth *middleware.Auth) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.With(h.auth.RequireRole(string(RoleAdmin))).Get("/", h.listUsers)
		r.With(h.auth.Require).Get("/{id}", h.getUser)
	})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Non-admins can only read their own account.
	identity, _ := middleware.IdentityFrom(r.Context())
	if identity.Role != string(RoleAdmin) && identity.UserID != id {
		respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
