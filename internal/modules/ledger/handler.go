package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/autopartsfinder/backend/internal/middleware"
	"github.com/autopartsfinder/backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the purchase history. Admins see everything and may
// filter freely; store owners are pinned to their own sales, customers
// to their own purchases.
type Handler struct {
	service Service
	auth    *middleware.Auth
}

func NewHandler(service Service, auth *middleware.Auth) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/ledger", func(r chi.Router) {
		r.Use(h.auth.Require)
		r.Get("/transactions", h.listTransactions)
		r.Get("/receipts", h.listReceipts)
	})
}

// filters resolves the effective buyer/owner filter for the caller.
func filters(r *http.Request) (buyerID, ownerID string) {
	identity, _ := middleware.IdentityFrom(r.Context())
	switch identity.Role {
	case string(user.RoleAdmin):
		return r.URL.Query().Get("buyer_id"), r.URL.Query().Get("owner_id")
	case string(user.RoleStoreOwner):
		return "", identity.UserID
	default:
		return identity.UserID, ""
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.Transactions(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	buyerID, ownerID := filters(r)
	matched := make([]Transaction, 0, len(history))
	for _, tx := range history {
		if buyerID != "" && tx.BuyerID != buyerID {
			continue
		}
		if ownerID != "" && tx.OwnerID != ownerID {
			continue
		}
		matched = append(matched, tx)
	}
	respond(w, http.StatusOK, matched)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.Receipts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	buyerID, ownerID := filters(r)
	matched := make([]Receipt, 0, len(history))
	for _, receipt := range history {
		if buyerID != "" && receipt.BuyerID != buyerID {
			continue
		}
		if ownerID != "" && !receiptHasOwner(receipt, ownerID) {
			continue
		}
		matched = append(matched, receipt)
	}
	respond(w, http.StatusOK, matched)
}

func receiptHasOwner(receipt Receipt, ownerID string) bool {
	for _, item := range receipt.Items {
		if item.OwnerID == ownerID {
			return true
		}
	}
	return false
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
