package cart

import "context"

// Service defines cart business logic. All operations act on a single
// scope and are immediately visible to subsequent reads of that scope.
type Service interface {
	// Add merges qty into an existing line for the part (resulting
	// quantity floored at 1) or appends a new line from the snapshot.
	Add(ctx context.Context, scope string, line Line, qty int) ([]Line, error)

	// UpdateQty sets a line's quantity; qty <= 0 removes the line.
	UpdateQty(ctx context.Context, scope, partNumber string, qty int) ([]Line, error)

	Remove(ctx context.Context, scope, partNumber string) ([]Line, error)
	Clear(ctx context.Context, scope string) error

	Items(ctx context.Context, scope string) ([]Line, error)

	// Total sums price*qty over the snapshot prices, never a live
	// catalog re-read.
	Total(ctx context.Context, scope string) (float64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new cart service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, scope string, line Line, qty int) ([]Line, error) {
	lines, err := s.repo.Get(ctx, scope)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].PartNumber == line.PartNumber {
			lines[i].Qty = max(1, lines[i].Qty+qty)
			merged = true
			break
		}
	}
	if !merged {
		line.Qty = max(1, qty)
		lines = append(lines, line)
	}

	if err := s.repo.Save(ctx, scope, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) UpdateQty(ctx context.Context, scope, partNumber string, qty int) ([]Line, error) {
	lines, err := s.repo.Get(ctx, scope)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.PartNumber == partNumber {
			if qty <= 0 {
				continue // a zeroed line is removed, not kept at 0
			}
			l.Qty = qty
		}
		kept = append(kept, l)
	}

	if err := s.repo.Save(ctx, scope, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *service) Remove(ctx context.Context, scope, partNumber string) ([]Line, error) {
	lines, err := s.repo.Get(ctx, scope)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.PartNumber != partNumber {
			kept = append(kept, l)
		}
	}

	if err := s.repo.Save(ctx, scope, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *service) Clear(ctx context.Context, scope string) error {
	return s.repo.Clear(ctx, scope)
}

func (s *service) Items(ctx context.Context, scope string) ([]Line, error) {
	return s.repo.Get(ctx, scope)
}

func (s *service) Total(ctx context.Context, scope string) (float64, error) {
	lines, err := s.repo.Get(ctx, scope)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Qty)
	}
	return total, nil
}
