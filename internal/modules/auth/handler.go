package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopartsfinder/backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
)

// Handler exposes login and signup endpoints.
type Handler struct {
	service     Service
	userService user.Service
}

func NewHandler(service Service, userService user.Service) *Handler {
	return &Handler{service: service, userService: userService}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/signup", h.signup)
	})
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidCredentials) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Role     string `json:"role"` // customer (default) or store_owner
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	role := user.Role(req.Role)
	if role == "" {
		role = user.RoleCustomer
	}
	// Admin accounts are seeded at boot, never self-registered.
	if role != user.RoleCustomer && role != user.RoleStoreOwner {
		respond(w, http.StatusBadRequest, map[string]string{"error": "role must be customer or store_owner"})
		return
	}

	u, err := h.userService.RegisterUser(r.Context(), req.Email, req.Password, req.Name, req.Phone, role)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, user.ErrEmailTaken) {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}

	token, err := h.service.IssueToken(u)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
