package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/app"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// orderColumns is the column list every order read and RETURNING clause
// uses, in scanOrder order.
const orderColumns = `
id, branch_id, business_id, registry_id, purchaser_id, status, total_cents, created_at,
confirmed_at, COALESCE(confirmed_by, ''),
canceled_at, COALESCE(cancel_reason, ''),
shipped_at, COALESCE(shipped_by, ''), COALESCE(shipping_doc_url, ''), eta_earliest, eta_latest,
delivered_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.ID, &o.BranchID, &o.BusinessID, &o.RegistryID, &o.PurchaserID, &status, &o.TotalCents, &o.CreatedAt,
		&o.ConfirmedAt, &o.ConfirmedBy,
		&o.CanceledAt, &o.CancelReason,
		&o.ShippedAt, &o.ShippedBy, &o.ShippingDocURL, &o.ETAEarliest, &o.ETALatest,
		&o.DeliveredAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.queryRow(ctx, query, orderID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// MarkConfirmed applies the requires_confirmation -> pending transition.
// The status and ownership predicates are part of the UPDATE itself, so a
// concurrent transition on the same order cannot slip between a check and
// the write; zero matched rows surfaces as domain.ErrOrderNotFound for the
// caller to classify.
func (r *OrderRepository) MarkConfirmed(ctx context.Context, orderID, branchID, actorID string, at time.Time) (domain.Order, error) {
	query := `
UPDATE orders
SET status = 'pending', confirmed_at = $4, confirmed_by = $3
WHERE id = $1 AND branch_id = $2 AND status = 'requires_confirmation'
RETURNING ` + orderColumns

	o, err := scanOrder(r.queryRow(ctx, query, orderID, branchID, actorID, at))
	if err != nil {
		return domain.Order{}, mapTransitionError("mark confirmed", err)
	}
	return o, nil
}

// MarkShipped applies paid -> shipped and writes the one-shot shipment
// record. Calling it again matches zero rows; shipment fields are never
// overwritten.
func (r *OrderRepository) MarkShipped(ctx context.Context, in app.ShipmentUpdate) (domain.Order, error) {
	query := `
UPDATE orders
SET status = 'shipped', shipped_at = $3, shipped_by = $4, shipping_doc_url = $5,
    eta_earliest = $6, eta_latest = $7
WHERE id = $1 AND business_id = $2 AND status = 'paid'
RETURNING ` + orderColumns

	o, err := scanOrder(r.queryRow(ctx, query,
		in.OrderID, in.BusinessID, in.At, in.ActorID, in.ShippingDocURL, in.ETAEarliest, in.ETALatest))
	if err != nil {
		return domain.Order{}, mapTransitionError("mark shipped", err)
	}
	return o, nil
}

func (r *OrderRepository) MarkDelivered(ctx context.Context, orderID, businessID string, at time.Time) (domain.Order, error) {
	query := `
UPDATE orders
SET status = 'delivered', delivered_at = $3
WHERE id = $1 AND business_id = $2 AND status = 'shipped'
RETURNING ` + orderColumns

	o, err := scanOrder(r.queryRow(ctx, query, orderID, businessID, at))
	if err != nil {
		return domain.Order{}, mapTransitionError("mark delivered", err)
	}
	return o, nil
}

func (r *OrderRepository) MarkCanceled(ctx context.Context, orderID, businessID, reason string, at time.Time) (domain.Order, error) {
	query := `
UPDATE orders
SET status = 'canceled', canceled_at = $3, cancel_reason = $4
WHERE id = $1 AND business_id = $2 AND status = 'requires_confirmation'
RETURNING ` + orderColumns

	o, err := scanOrder(r.queryRow(ctx, query, orderID, businessID, at, reason))
	if err != nil {
		return domain.Order{}, mapTransitionError("mark canceled", err)
	}
	return o, nil
}

// ListOpenOrders returns a business's orders still awaiting confirmation or
// shipment, oldest first, for SLA classification.
func (r *OrderRepository) ListOpenOrders(ctx context.Context, businessID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
FROM orders
WHERE business_id = $1 AND status IN ('requires_confirmation', 'pending')
ORDER BY created_at`

	rows, err := r.query(ctx, query, businessID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list open orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan open order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list open orders: %w", err)
	}
	return orders, nil
}

func mapTransitionError(op string, err error) error {
	if isInvalidUUID(err) {
		return domain.ErrInvalidID
	}
	if err == pgx.ErrNoRows {
		return domain.ErrOrderNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
