package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

type TransactionType string

const (
	TransactionTypeReturn TransactionType = "return"
)

// LedgerTransaction is an immutable financial record scoped to a registry.
// Rows are append-only: never updated, never deleted. References are unique
// and strictly increasing per registry.
type LedgerTransaction struct {
	ID          string
	Reference   string
	AmountCents int64
	Description string
	Status      TransactionStatus
	Type        TransactionType
	RegistryID  string
	PurchaserID string
	CreatedAt   time.Time
}
