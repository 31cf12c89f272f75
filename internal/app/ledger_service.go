package app

import (
	"context"
	"fmt"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

type LedgerRepository interface {
	GetRegistry(ctx context.Context, registryID string) (domain.Registry, error)
	CountTransactions(ctx context.Context, registryID string) (int, error)
	CreateTransaction(ctx context.Context, tx domain.LedgerTransaction) error
	ListTransactions(ctx context.Context, registryID string) ([]domain.LedgerTransaction, error)
}

// LedgerService allocates sequence-numbered transaction references and
// records refund transactions under a registry.
type LedgerService struct {
	repo  LedgerRepository
	clock clock.Clock
}

func NewLedgerService(repo LedgerRepository, clk clock.Clock) *LedgerService {
	return &LedgerService{
		repo:  repo,
		clock: clk,
	}
}

type RecordRefundInput struct {
	RegistryID  string
	PurchaserID string
	AmountCents int64
	Description string
}

// RecordRefund computes the next reference for the registry as
// {base}-{count+1} and inserts a completed return transaction carrying it.
//
// The count-then-insert pair is racy when two refunds against the same
// registry run concurrently: both readers derive the same sequence number.
// The unique index on (registry_id, reference) is what actually guarantees
// reference uniqueness; the repository reports a collision as
// domain.ErrConflict and the caller retries the whole operation with a
// fresh count. Run inside the caller's transaction when the refund must be
// atomic with other writes.
func (s *LedgerService) RecordRefund(ctx context.Context, in RecordRefundInput) (domain.LedgerTransaction, error) {
	registry, err := s.repo.GetRegistry(ctx, in.RegistryID)
	if err != nil {
		return domain.LedgerTransaction{}, err
	}

	count, err := s.repo.CountTransactions(ctx, in.RegistryID)
	if err != nil {
		return domain.LedgerTransaction{}, err
	}

	tx := domain.LedgerTransaction{
		ID:          newID(),
		Reference:   fmt.Sprintf("%s-%d", registry.Reference, count+1),
		AmountCents: in.AmountCents,
		Description: in.Description,
		Status:      domain.TransactionStatusCompleted,
		Type:        domain.TransactionTypeReturn,
		RegistryID:  in.RegistryID,
		PurchaserID: in.PurchaserID,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return domain.LedgerTransaction{}, err
	}
	return tx, nil
}

// ListTransactions returns a registry's transaction history, oldest first.
func (s *LedgerService) ListTransactions(ctx context.Context, registryID string) ([]domain.LedgerTransaction, error) {
	if registryID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListTransactions(ctx, registryID)
}
