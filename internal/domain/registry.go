package domain

import "time"

// Registry is the parent aggregate an order's purchase belongs to (a wedding
// or gift event). Its Reference is the base for ledger transaction
// references.
type Registry struct {
	ID          string
	Reference   string
	PurchaserID string
	CreatedAt   time.Time
}
