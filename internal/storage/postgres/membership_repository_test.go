package postgres

import (
	"context"
	"testing"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/testutil"
)

func TestMembershipRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewMembershipRepository(pool)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	businessID, branchID := testutil.InsertBusinessAndBranch(t, ctx, pool, "Casa Blanca")
	otherBusiness, otherBranch := testutil.InsertBusinessAndBranch(t, ctx, pool, "Otra Casa")

	testutil.InsertMembership(t, ctx, pool, "actor-active", branchID, businessID, true)
	testutil.InsertMembership(t, ctx, pool, "actor-revoked", branchID, businessID, false)

	t.Run("CanActOnBranch", func(t *testing.T) {
		ok, err := repo.CanActOnBranch(ctx, "actor-active", branchID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatalf("expected active membership to grant access")
		}

		ok, err = repo.CanActOnBranch(ctx, "actor-active", otherBranch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected no access to another branch")
		}

		ok, err = repo.CanActOnBranch(ctx, "actor-revoked", branchID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected inactive membership to deny access")
		}
	})

	t.Run("CanActOnBusiness", func(t *testing.T) {
		ok, err := repo.CanActOnBusiness(ctx, "actor-active", businessID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatalf("expected active membership to grant access")
		}

		ok, err = repo.CanActOnBusiness(ctx, "actor-active", otherBusiness)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected no access to another business")
		}

		ok, err = repo.CanActOnBusiness(ctx, "actor-revoked", businessID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected inactive membership to deny access")
		}
	})

	t.Run("unknown actor", func(t *testing.T) {
		ok, err := repo.CanActOnBranch(ctx, "actor-unknown", branchID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected unknown actor to be denied")
		}
	})
}
