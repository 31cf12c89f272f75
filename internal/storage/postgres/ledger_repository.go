package postgres

import (
	"context"
	"fmt"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) GetRegistry(ctx context.Context, registryID string) (domain.Registry, error) {
	const query = `SELECT id, reference, purchaser_id, created_at FROM registries WHERE id = $1`

	var reg domain.Registry
	err := r.queryRow(ctx, query, registryID).
		Scan(&reg.ID, &reg.Reference, &reg.PurchaserID, &reg.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Registry{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Registry{}, domain.ErrRegistryNotFound
		}
		return domain.Registry{}, fmt.Errorf("get registry: %w", err)
	}
	return reg, nil
}

func (r *LedgerRepository) CountTransactions(ctx context.Context, registryID string) (int, error) {
	const query = `SELECT COUNT(*) FROM ledger_transactions WHERE registry_id = $1`

	var count int
	if err := r.queryRow(ctx, query, registryID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// CreateTransaction appends one immutable row. The unique index on
// (registry_id, reference) is the storage-boundary guarantee that two
// concurrent allocations cannot record the same reference; a violation is
// reported as domain.ErrConflict so the caller re-derives the count and
// retries.
func (r *LedgerRepository) CreateTransaction(ctx context.Context, tx domain.LedgerTransaction) error {
	const stmt = `
INSERT INTO ledger_transactions (id, reference, amount_cents, description, status, type, registry_id, purchaser_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		tx.ID,
		tx.Reference,
		tx.AmountCents,
		tx.Description,
		tx.Status,
		tx.Type,
		tx.RegistryID,
		tx.PurchaserID,
		tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, registryID string) ([]domain.LedgerTransaction, error) {
	const query = `
SELECT id, reference, amount_cents, description, status, type, registry_id, purchaser_id, created_at
FROM ledger_transactions
WHERE registry_id = $1
ORDER BY created_at, reference`

	rows, err := r.query(ctx, query, registryID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		var status, txType string
		if err := rows.Scan(&tx.ID, &tx.Reference, &tx.AmountCents, &tx.Description, &status, &txType, &tx.RegistryID, &tx.PurchaserID, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Status = domain.TransactionStatus(status)
		tx.Type = domain.TransactionType(txType)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (r *LedgerRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LedgerRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *LedgerRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
