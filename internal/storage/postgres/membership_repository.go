package postgres

import (
	"context"
	"fmt"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MembershipRepository answers capability checks from the memberships
// table. Only the presence of an active row matters; the query runs inside
// the caller's transaction when one is in the context, so the check and the
// order write cannot straddle a membership revocation.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

func (r *MembershipRepository) CanActOnBranch(ctx context.Context, actorID, branchID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM memberships
	WHERE actor_id = $1 AND branch_id = $2 AND active
)`
	return r.exists(ctx, query, actorID, branchID)
}

func (r *MembershipRepository) CanActOnBusiness(ctx context.Context, actorID, businessID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM memberships
	WHERE actor_id = $1 AND business_id = $2 AND active
)`
	return r.exists(ctx, query, actorID, businessID)
}

func (r *MembershipRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.queryRow(ctx, query, args...).Scan(&ok); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("membership check: %w", err)
	}
	return ok, nil
}

func (r *MembershipRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
