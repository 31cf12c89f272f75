package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

// TransactionLister is the minimal interface needed for the registry
// history view.
type TransactionLister interface {
	ListTransactions(ctx context.Context, registryID string) ([]domain.LedgerTransaction, error)
}

// HandleListTransactions returns a registry's transaction history for the
// admin UI, oldest first.
func HandleListTransactions(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}

		txs, err := svc.ListTransactions(r.Context(), chi.URLParam(r, "registryID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := transactionsResponse{Transactions: make([]transactionResponse, 0, len(txs))}
		for _, tx := range txs {
			resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type transactionsResponse struct {
	Transactions []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	RegistryID  string    `json:"registry_id"`
	PurchaserID string    `json:"purchaser_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResponse(tx domain.LedgerTransaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Reference:   tx.Reference,
		AmountCents: tx.AmountCents,
		Description: tx.Description,
		Status:      string(tx.Status),
		Type:        string(tx.Type),
		RegistryID:  tx.RegistryID,
		PurchaserID: tx.PurchaserID,
		CreatedAt:   tx.CreatedAt,
	}
}
