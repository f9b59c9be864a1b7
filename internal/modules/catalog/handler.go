package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopartsfinder/backend/internal/middleware"
	"github.com/autopartsfinder/backend/internal/modules/user"
	"github.com/autopartsfinder/backend/internal/pkg/logger"
	"github.com/autopartsfinder/backend/internal/pkg/spreadsheet"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	auth    *middleware.Auth
	log     *logger.Logger
}

func NewHandler(service Service, auth *middleware.Auth, log *logger.Logger) *Handler {
	return &Handler{service: service, auth: auth, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/parts", h.listParts)
		r.Get("/parts/{partNumber}", h.getPart)
		r.With(h.auth.RequireRole(string(user.RoleAdmin), string(user.RoleStoreOwner))).
			Post("/upload", h.upload)
	})
}

func (h *Handler) listParts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	parts, err := h.service.Search(r.Context(), query)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if ownerID := r.URL.Query().Get("owner_id"); ownerID != "" {
		filtered := make([]Part, 0, len(parts))
		for _, p := range parts {
			if p.OwnerID == ownerID {
				filtered = append(filtered, p)
			}
		}
		parts = filtered
	}
	respond(w, http.StatusOK, parts)
}

func (h *Handler) getPart(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")
	p, err := h.service.Find(r.Context(), partNumber)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrPartNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

// upload accepts a spreadsheet (multipart field "file"), merges its
// rows into the catalog and returns the per-row summary. Store-owner
// uploads stamp the owner's id onto every accepted row; admin uploads
// leave row ownership as-is.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "file upload error: " + err.Error()})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	identity, _ := middleware.IdentityFrom(r.Context())
	actingOwnerID := ""
	if identity.Role == string(user.RoleStoreOwner) {
		actingOwnerID = identity.UserID
	}

	rows, err := spreadsheet.Parse(file, header.Filename)
	if err != nil {
		// A file-level failure is reported the same way as row
		// failures: one synthetic error at row 0, nothing merged.
		h.log.Warn("upload parse failed", "filename", header.Filename, "error", err.Error())
		respond(w, http.StatusOK, &UploadSummary{
			Errors: []RowError{{
				Row:     0,
				Message: "Failed to parse the file. Please ensure it's a valid .xlsx or .csv file.",
				Data:    spreadsheet.Row{},
			}},
		})
		return
	}

	summary, err := h.service.Merge(r.Context(), rows, actingOwnerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.log.Info("upload merged",
		"filename", header.Filename,
		"rows", len(rows),
		"succeeded", summary.SuccessCount,
		"failed", summary.FailedCount,
		"acting_owner", actingOwnerID)
	respond(w, http.StatusOK, summary)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
