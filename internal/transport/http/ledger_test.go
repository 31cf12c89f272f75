package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

type fakeTransactionLister struct {
	txs []domain.LedgerTransaction
	err error
}

func (f *fakeTransactionLister) ListTransactions(_ context.Context, _ string) ([]domain.LedgerTransaction, error) {
	return f.txs, f.err
}

func TestHandleListTransactions(t *testing.T) {
	t.Parallel()

	get := func(svc TransactionLister, actor string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Get("/registries/{registryID}/transactions", HandleListTransactions(svc))

		req := httptest.NewRequest(http.MethodGet, "/registries/reg-1/transactions", nil)
		if actor != "" {
			req.Header.Set(actorHeader, actor)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("returns the history", func(t *testing.T) {
		now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
		svc := &fakeTransactionLister{txs: []domain.LedgerTransaction{
			{ID: "tx-1", Reference: "WED2025-1", AmountCents: 500, Status: domain.TransactionStatusCompleted, Type: domain.TransactionTypeReturn, RegistryID: "reg-1", CreatedAt: now},
			{ID: "tx-2", Reference: "WED2025-2", AmountCents: 900, Status: domain.TransactionStatusCompleted, Type: domain.TransactionTypeReturn, RegistryID: "reg-1", CreatedAt: now.Add(time.Minute)},
		}}

		rec := get(svc, "actor-1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp transactionsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Transactions) != 2 || resp.Transactions[0].Reference != "WED2025-1" {
			t.Fatalf("unexpected transactions: %+v", resp.Transactions)
		}
		if resp.Transactions[1].Type != "return" || resp.Transactions[1].Status != "completed" {
			t.Fatalf("unexpected transaction fields: %+v", resp.Transactions[1])
		}
	})

	t.Run("empty history serializes as empty array", func(t *testing.T) {
		rec := get(&fakeTransactionLister{}, "actor-1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp map[string]json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if string(resp["transactions"]) != "[]" {
			t.Fatalf("expected transactions to be [], got %s", resp["transactions"])
		}
	})

	t.Run("missing actor header", func(t *testing.T) {
		rec := get(&fakeTransactionLister{}, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown registry id shape", func(t *testing.T) {
		rec := get(&fakeTransactionLister{err: domain.ErrInvalidID}, "actor-1")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
