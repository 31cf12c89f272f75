package app

import "context"

// CapabilityChecker answers whether an actor may act for a branch or
// business. Today this is membership presence only; finer role gating would
// live behind the same interface.
type CapabilityChecker interface {
	CanActOnBranch(ctx context.Context, actorID, branchID string) (bool, error)
	CanActOnBusiness(ctx context.Context, actorID, businessID string) (bool, error)
}
