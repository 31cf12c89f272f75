package domain

import "time"

// Membership links an actor to the branch and business it may act for.
// Presence of an active row is the only gate on order transitions; roles are
// not further restricted for fulfillment actions.
type Membership struct {
	ID         string
	ActorID    string
	BranchID   string
	BusinessID string
	Active     bool
	CreatedAt  time.Time
}
