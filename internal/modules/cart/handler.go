package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopartsfinder/backend/internal/middleware"
	"github.com/autopartsfinder/backend/internal/modules/catalog"
	"github.com/go-chi/chi/v5"
)

// Handler exposes cart HTTP endpoints. Requests without a token
// operate on the shared guest scope, matching the original app's
// anonymous cart.
type Handler struct {
	service Service
	catalog catalog.Service
	auth    *middleware.Auth
}

func NewHandler(service Service, catalogService catalog.Service, auth *middleware.Auth) *Handler {
	return &Handler{service: service, catalog: catalogService, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(h.auth.Optional)
		r.Get("/", h.getCart)
		r.Post("/items", h.addItem)
		r.Patch("/items/{partNumber}", h.updateQty)
		r.Delete("/items/{partNumber}", h.removeItem)
		r.Delete("/", h.clearCart)
	})
}

func scopeFrom(r *http.Request) string {
	if id, ok := middleware.IdentityFrom(r.Context()); ok {
		return id.UserID
	}
	return GuestScope
}

type cartResponse struct {
	Items []Line  `json:"items"`
	Total float64 `json:"total"`
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, lines []Line) {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Qty)
	}
	if lines == nil {
		lines = []Line{}
	}
	respond(w, http.StatusOK, cartResponse{Items: lines, Total: total})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Items(r.Context(), scopeFrom(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.respondCart(w, r, lines)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		PartNumber string `json:"partNumber"`
		Qty        int    `json:"qty"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	// Snapshot name, owner and price at add time.
	part, err := h.catalog.Find(r.Context(), req.PartNumber)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrPartNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}

	line := Line{
		PartNumber: part.PartNumber,
		PartName:   part.PartName,
		OwnerID:    part.OwnerID,
		Price:      part.Price,
	}
	lines, err := h.service.Add(r.Context(), scopeFrom(r), line, req.Qty)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.respondCart(w, r, lines)
}

func (h *Handler) updateQty(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Qty int `json:"qty"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	lines, err := h.service.UpdateQty(r.Context(), scopeFrom(r), chi.URLParam(r, "partNumber"), req.Qty)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.respondCart(w, r, lines)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Remove(r.Context(), scopeFrom(r), chi.URLParam(r, "partNumber"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.respondCart(w, r, lines)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), scopeFrom(r)); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.respondCart(w, r, nil)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
