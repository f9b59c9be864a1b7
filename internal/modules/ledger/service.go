package ledger

import "context"

// Service defines ledger business logic. The ledger is a passive
// history: the checkout engine appends, the admin and owner views read.
type Service interface {
	Record(ctx context.Context, tx Transaction) error
	RecordReceipt(ctx context.Context, receipt Receipt) error
	Transactions(ctx context.Context) ([]Transaction, error)
	Receipts(ctx context.Context) ([]Receipt, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, tx Transaction) error {
	return s.repo.AppendTransaction(ctx, tx)
}

func (s *service) RecordReceipt(ctx context.Context, receipt Receipt) error {
	return s.repo.AppendReceipt(ctx, receipt)
}

func (s *service) Transactions(ctx context.Context) ([]Transaction, error) {
	return s.repo.Transactions(ctx)
}

func (s *service) Receipts(ctx context.Context) ([]Receipt, error) {
	return s.repo.Receipts(ctx)
}
