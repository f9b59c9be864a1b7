package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/autopartsfinder/backend/internal/monitoring"
	"github.com/autopartsfinder/backend/internal/pkg/spreadsheet"
)

// Service defines catalog business logic. Validation lives in Merge;
// the storage operations trust their callers.
type Service interface {
	All(ctx context.Context) ([]Part, error)
	Find(ctx context.Context, partNumber string) (*Part, error)

	// Search does a case-insensitive substring match against part
	// name, part number, make, model and the decimal form of the
	// year. An empty query returns the whole catalog.
	Search(ctx context.Context, query string) ([]Part, error)

	UpsertAll(ctx context.Context, parts []Part) error
	DeductStock(ctx context.Context, partNumber string, qty int) (*Part, error)

	// Merge validates raw spreadsheet rows and merges the good ones
	// into the catalog. See merge.go.
	Merge(ctx context.Context, rows []spreadsheet.Row, actingOwnerID string) (*UploadSummary, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) All(ctx context.Context) ([]Part, error) {
	return s.repo.All(ctx)
}

func (s *service) Find(ctx context.Context, partNumber string) (*Part, error) {
	return s.repo.Find(ctx, partNumber)
}

func (s *service) Search(ctx context.Context, query string) ([]Part, error) {
	parts, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return parts, nil
	}

	q := strings.ToLower(query)
	matched := make([]Part, 0, len(parts))
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p.PartName), q) ||
			strings.Contains(strings.ToLower(p.PartNumber), q) ||
			strings.Contains(strings.ToLower(p.Make), q) ||
			strings.Contains(strings.ToLower(p.Model), q) ||
			strings.Contains(strconv.Itoa(p.Year), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *service) UpsertAll(ctx context.Context, parts []Part) error {
	if err := s.repo.UpsertAll(ctx, parts); err != nil {
		return err
	}
	s.updateGauge(ctx)
	return nil
}

func (s *service) DeductStock(ctx context.Context, partNumber string, qty int) (*Part, error) {
	return s.repo.DeductStock(ctx, partNumber, qty)
}

func (s *service) updateGauge(ctx context.Context) {
	if parts, err := s.repo.All(ctx); err == nil {
		monitoring.CatalogPartsTotal.Set(float64(len(parts)))
	}
}
