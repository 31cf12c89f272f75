package domain

import "time"

type OrderStatus string

const (
	OrderStatusRequiresConfirmation OrderStatus = "requires_confirmation"
	OrderStatusPending              OrderStatus = "pending"
	OrderStatusPaid                 OrderStatus = "paid"
	OrderStatusShipped              OrderStatus = "shipped"
	OrderStatusDelivered            OrderStatus = "delivered"
	OrderStatusCanceled             OrderStatus = "canceled"
)

// orderTransitions is the single source of truth for legal status moves.
// delivered and canceled are terminal; canceled is reachable only before
// confirmation.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusRequiresConfirmation: {OrderStatusPending, OrderStatusCanceled},
	OrderStatusPending:              {OrderStatusPaid},
	OrderStatusPaid:                 {OrderStatusShipped},
	OrderStatusShipped:              {OrderStatusDelivered},
	OrderStatusDelivered:            {},
	OrderStatusCanceled:             {},
}

// CanTransitionTo reports whether the status may move to the target status.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order represents one purchased line grouping fulfilled by a single
// supplier branch. Orders are created by checkout in requires_confirmation
// and are never deleted; terminal rows are kept for audit.
type Order struct {
	ID          string
	BranchID    string
	BusinessID  string
	RegistryID  string
	PurchaserID string
	Status      OrderStatus
	TotalCents  int64
	CreatedAt   time.Time

	ConfirmedAt *time.Time
	ConfirmedBy string

	CanceledAt   *time.Time
	CancelReason string

	ShippedAt      *time.Time
	ShippedBy      string
	ShippingDocURL string
	ETAEarliest    *time.Time
	ETALatest      *time.Time

	DeliveredAt *time.Time
}
