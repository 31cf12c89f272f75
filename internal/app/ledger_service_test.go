package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

func TestLedgerService_RecordRefund(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("first transaction gets sequence one", func(t *testing.T) {
		repo := newFakeLedgerRepo(domain.Registry{ID: "reg-1", Reference: "WED2025"})
		svc := NewLedgerService(repo, clock.NewFixed(now))

		tx, err := svc.RecordRefund(ctx, RecordRefundInput{
			RegistryID:  "reg-1",
			PurchaserID: "buyer-1",
			AmountCents: 4200,
			Description: "Refund for canceled order order-9",
		})
		require.NoError(t, err)
		assert.Equal(t, "WED2025-1", tx.Reference)
		assert.Equal(t, domain.TransactionTypeReturn, tx.Type)
		assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
		assert.Equal(t, int64(4200), tx.AmountCents)
		assert.Equal(t, now, tx.CreatedAt)
		assert.NotEmpty(t, tx.ID)
	})

	t.Run("references increase strictly per registry", func(t *testing.T) {
		repo := newFakeLedgerRepo(
			domain.Registry{ID: "reg-1", Reference: "WED2025"},
			domain.Registry{ID: "reg-2", Reference: "BODA77"},
		)
		svc := NewLedgerService(repo, clock.NewFixed(now))

		for i, want := range []string{"WED2025-1", "WED2025-2", "WED2025-3"} {
			tx, err := svc.RecordRefund(ctx, RecordRefundInput{RegistryID: "reg-1", AmountCents: int64(i + 1)})
			require.NoError(t, err)
			assert.Equal(t, want, tx.Reference)
		}

		// Sequences are independent across registries.
		tx, err := svc.RecordRefund(ctx, RecordRefundInput{RegistryID: "reg-2", AmountCents: 10})
		require.NoError(t, err)
		assert.Equal(t, "BODA77-1", tx.Reference)
	})

	t.Run("unknown registry", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewLedgerService(repo, clock.NewFixed(now))

		_, err := svc.RecordRefund(ctx, RecordRefundInput{RegistryID: "missing"})
		assert.ErrorIs(t, err, domain.ErrRegistryNotFound)
	})

	t.Run("reference collision surfaces as conflict", func(t *testing.T) {
		repo := newFakeLedgerRepo(domain.Registry{ID: "reg-1", Reference: "WED2025"})
		svc := NewLedgerService(repo, clock.NewFixed(now))

		// Simulate a concurrent allocation that won the race: the registry
		// holds one row whose reference already carries the next sequence
		// number, so count+1 collides.
		require.NoError(t, repo.CreateTransaction(ctx, domain.LedgerTransaction{RegistryID: "reg-1", Reference: "WED2025-2"}))
		_, err := svc.RecordRefund(ctx, RecordRefundInput{RegistryID: "reg-1", AmountCents: 5})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestLedgerService_ListTransactions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	repo := newFakeLedgerRepo(domain.Registry{ID: "reg-1", Reference: "WED2025"})
	svc := NewLedgerService(repo, clock.NewFixed(now))

	_, err := svc.ListTransactions(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	for i := 0; i < 2; i++ {
		_, err := svc.RecordRefund(context.Background(), RecordRefundInput{RegistryID: "reg-1", AmountCents: int64(i)})
		require.NoError(t, err)
	}
	txs, err := svc.ListTransactions(context.Background(), "reg-1")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
