package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/autopartsfinder/backend/internal/modules/cart"
	"github.com/autopartsfinder/backend/internal/modules/catalog"
	"github.com/autopartsfinder/backend/internal/modules/ledger"
	"github.com/autopartsfinder/backend/internal/monitoring"
	"github.com/autopartsfinder/backend/internal/pkg/logger"
	"github.com/google/uuid"
)

// ErrEmptyCart is returned when a checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ShortageError aggregates every line that cannot be fulfilled. When
// it is returned nothing has been mutated.
type ShortageError struct {
	Shortages []string
}

func (e *ShortageError) Error() string {
	return "cannot complete checkout: " + strings.Join(e.Shortages, "; ")
}

// Service validates a cart against live stock and turns it into a
// receipt plus one transaction per line.
type Service interface {
	Checkout(ctx context.Context, buyerID, scope string) (*ledger.Receipt, error)
}

type service struct {
	// mu serialises whole checkouts. The validation pass and the
	// commit pass must not interleave with another checkout; the
	// per-item DeductStock guard alone cannot prevent a cart passing
	// validation against stock another commit is about to take.
	mu sync.Mutex

	catalog catalog.Service
	cart    cart.Service
	ledger  ledger.Service
	log     *logger.Logger
}

// NewService creates a new checkout service.
func NewService(catalogService catalog.Service, cartService cart.Service, ledgerService ledger.Service, log *logger.Logger) Service {
	return &service{catalog: catalogService, cart: cartService, ledger: ledgerService, log: log}
}

// Checkout runs in two passes. The first pass is read-only: every
// line is checked against current stock and all shortages are
// collected; any shortage aborts with zero mutation. The second pass
// persists the receipt and then commits line by line. A mid-commit
// failure surfaces immediately and already-committed lines are NOT
// rolled back; after a clean validation pass under the checkout lock
// that can only happen when the storage substrate itself fails.
func (s *service) Checkout(ctx context.Context, buyerID, scope string) (*ledger.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	monitoring.CheckoutAttemptsTotal.Inc()

	lines, err := s.cart.Items(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		monitoring.CheckoutFailureTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	// ── Pass 1: validate, mutate nothing ─────────────────────────────
	var shortages []string
	for _, line := range lines {
		part, err := s.catalog.Find(ctx, line.PartNumber)
		if errors.Is(err, catalog.ErrPartNotFound) {
			shortages = append(shortages, fmt.Sprintf("part %q is no longer available", line.PartNumber))
			continue
		}
		if err != nil {
			return nil, err
		}
		if part.Stock < line.Qty {
			shortages = append(shortages, fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
				line.PartNumber, line.Qty, part.Stock))
		}
	}
	if len(shortages) > 0 {
		monitoring.CheckoutFailureTotal.WithLabelValues("shortage").Inc()
		return nil, &ShortageError{Shortages: shortages}
	}

	// ── Pass 2: commit ───────────────────────────────────────────────
	total, err := s.cart.Total(ctx, scope)
	if err != nil {
		return nil, err
	}

	items := make([]ledger.ReceiptItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, ledger.ReceiptItem{
			PartNumber: line.PartNumber,
			PartName:   line.PartName,
			OwnerID:    line.OwnerID,
			Price:      line.Price,
			Qty:        line.Qty,
		})
	}
	receipt := &ledger.Receipt{
		ID:      uuid.New(),
		BuyerID: buyerID,
		Items:   items,
		Total:   total,
		Date:    time.Now().UTC(),
	}

	if err := s.ledger.RecordReceipt(ctx, *receipt); err != nil {
		monitoring.CheckoutFailureTotal.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("record receipt: %w", err)
	}

	for _, line := range lines {
		part, err := s.catalog.DeductStock(ctx, line.PartNumber, line.Qty)
		if err != nil {
			monitoring.CheckoutFailureTotal.WithLabelValues("commit").Inc()
			s.log.Error("checkout commit failed mid-way",
				"receipt_id", receipt.ID.String(),
				"part_number", line.PartNumber,
				"error", err.Error())
			return nil, fmt.Errorf("purchase %q: %w", line.PartNumber, err)
		}

		tx := ledger.Transaction{
			ID:         uuid.New(),
			BuyerID:    buyerID,
			OwnerID:    part.OwnerID,
			PartNumber: part.PartNumber,
			Price:      part.Price,
			Qty:        line.Qty,
			Date:       receipt.Date,
			ReceiptID:  receipt.ID,
		}
		if err := s.ledger.Record(ctx, tx); err != nil {
			monitoring.CheckoutFailureTotal.WithLabelValues("commit").Inc()
			return nil, fmt.Errorf("record transaction for %q: %w", line.PartNumber, err)
		}
		monitoring.ItemsSoldTotal.Add(float64(line.Qty))
	}

	if err := s.cart.Clear(ctx, scope); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	monitoring.CheckoutSuccessTotal.Inc()
	s.log.Info("checkout completed",
		"receipt_id", receipt.ID.String(),
		"buyer_id", buyerID,
		"lines", len(lines),
		"total", receipt.Total)
	return receipt, nil
}
