package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	MarkConfirmed(ctx context.Context, orderID, branchID, actorID string, at time.Time) (domain.Order, error)
	MarkShipped(ctx context.Context, in ShipmentUpdate) (domain.Order, error)
	MarkDelivered(ctx context.Context, orderID, businessID string, at time.Time) (domain.Order, error)
	MarkCanceled(ctx context.Context, orderID, businessID, reason string, at time.Time) (domain.Order, error)
}

// ShipmentUpdate carries the one-shot shipment record written on the
// paid -> shipped transition. Shipment fields are never revised afterwards.
type ShipmentUpdate struct {
	OrderID        string
	BusinessID     string
	ActorID        string
	ShippingDocURL string
	ETAEarliest    time.Time
	ETALatest      time.Time
	At             time.Time
}

// RefundRecorder is the slice of the ledger service the cancel transition
// needs.
type RefundRecorder interface {
	RecordRefund(ctx context.Context, in RecordRefundInput) (domain.LedgerTransaction, error)
}

// LifecycleService owns the order status state machine. Every transition
// runs its membership check and its conditional status write inside one
// repository transaction, so no concurrent actor can act on a stale status
// between the check and the write.
type LifecycleService struct {
	repo         OrderRepository
	ledger       RefundRecorder
	capabilities CapabilityChecker
	clock        clock.Clock
}

func NewLifecycleService(repo OrderRepository, ledger RefundRecorder, caps CapabilityChecker, clk clock.Clock) *LifecycleService {
	return &LifecycleService{
		repo:         repo,
		ledger:       ledger,
		capabilities: caps,
		clock:        clk,
	}
}

type ConfirmOrderInput struct {
	OrderID  string
	ActorID  string
	BranchID string
}

// Confirm moves requires_confirmation -> pending, stamping the confirming
// actor and timestamp.
func (s *LifecycleService) Confirm(ctx context.Context, in ConfirmOrderInput) (domain.Order, error) {
	if in.OrderID == "" || in.BranchID == "" {
		return domain.Order{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var updated domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		allowed, err := s.capabilities.CanActOnBranch(txCtx, in.ActorID, in.BranchID)
		if err != nil {
			return err
		}
		if !allowed {
			return domain.ErrForbidden
		}

		order, err := s.repo.MarkConfirmed(txCtx, in.OrderID, in.BranchID, in.ActorID, now)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return s.staleTransitionError(txCtx, in.OrderID, in.BranchID, "")
			}
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}

type ShipOrderInput struct {
	OrderID        string
	ActorID        string
	BusinessID     string
	ShippingDocURL string
	ETAEarliest    time.Time
	ETALatest      time.Time
}

// Ship moves paid -> shipped, recording the shipping document and both
// delivery-estimate dates. A second call fails with an invalid-state error
// rather than overwriting the shipment record.
func (s *LifecycleService) Ship(ctx context.Context, in ShipOrderInput) (domain.Order, error) {
	if in.OrderID == "" || in.BusinessID == "" {
		return domain.Order{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.ShippingDocURL) == "" {
		return domain.Order{}, domain.ErrShippingDocRequired
	}
	if in.ETAEarliest.IsZero() || in.ETALatest.IsZero() {
		return domain.Order{}, domain.ErrETAWindowRequired
	}
	if in.ETAEarliest.After(in.ETALatest) {
		return domain.Order{}, domain.ErrInvalidETAWindow
	}

	now := s.clock.Now()
	var updated domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		allowed, err := s.capabilities.CanActOnBusiness(txCtx, in.ActorID, in.BusinessID)
		if err != nil {
			return err
		}
		if !allowed {
			return domain.ErrForbidden
		}

		order, err := s.repo.MarkShipped(txCtx, ShipmentUpdate{
			OrderID:        in.OrderID,
			BusinessID:     in.BusinessID,
			ActorID:        in.ActorID,
			ShippingDocURL: in.ShippingDocURL,
			ETAEarliest:    in.ETAEarliest,
			ETALatest:      in.ETALatest,
			At:             now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return s.staleTransitionError(txCtx, in.OrderID, "", in.BusinessID)
			}
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}

type DeliverOrderInput struct {
	OrderID    string
	ActorID    string
	BusinessID string
}

// Deliver moves shipped -> delivered. Terminal.
func (s *LifecycleService) Deliver(ctx context.Context, in DeliverOrderInput) (domain.Order, error) {
	if in.OrderID == "" || in.BusinessID == "" {
		return domain.Order{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var updated domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		allowed, err := s.capabilities.CanActOnBusiness(txCtx, in.ActorID, in.BusinessID)
		if err != nil {
			return err
		}
		if !allowed {
			return domain.ErrForbidden
		}

		order, err := s.repo.MarkDelivered(txCtx, in.OrderID, in.BusinessID, now)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return s.staleTransitionError(txCtx, in.OrderID, "", in.BusinessID)
			}
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}

type CancelOrderInput struct {
	OrderID    string
	ActorID    string
	BusinessID string
	Reason     string
}

type CancelOrderResult struct {
	Order           domain.Order
	LedgerReference string
}

// Cancel moves requires_confirmation -> canceled and records exactly one
// refund transaction against the order's registry in the same transaction.
// A reference collision surfaces as domain.ErrConflict with both writes
// rolled back; the caller retries the whole operation.
func (s *LifecycleService) Cancel(ctx context.Context, in CancelOrderInput) (CancelOrderResult, error) {
	if in.OrderID == "" || in.BusinessID == "" {
		return CancelOrderResult{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Reason) == "" {
		return CancelOrderResult{}, domain.ErrReasonRequired
	}

	now := s.clock.Now()
	var result CancelOrderResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		allowed, err := s.capabilities.CanActOnBusiness(txCtx, in.ActorID, in.BusinessID)
		if err != nil {
			return err
		}
		if !allowed {
			return domain.ErrForbidden
		}

		order, err := s.repo.MarkCanceled(txCtx, in.OrderID, in.BusinessID, in.Reason, now)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return s.staleTransitionError(txCtx, in.OrderID, "", in.BusinessID)
			}
			return err
		}

		refund, err := s.ledger.RecordRefund(txCtx, RecordRefundInput{
			RegistryID:  order.RegistryID,
			PurchaserID: order.PurchaserID,
			AmountCents: order.TotalCents,
			Description: fmt.Sprintf("Refund for canceled order %s", order.ID),
		})
		if err != nil {
			return err
		}

		result = CancelOrderResult{Order: order, LedgerReference: refund.Reference}
		return nil
	})
	if err != nil {
		return CancelOrderResult{}, err
	}
	return result, nil
}

// GetOrder returns a business-scoped order for the admin detail view.
func (s *LifecycleService) GetOrder(ctx context.Context, orderID, actorID, businessID string) (domain.Order, error) {
	if orderID == "" || businessID == "" {
		return domain.Order{}, domain.ErrInvalidID
	}

	allowed, err := s.capabilities.CanActOnBusiness(ctx, actorID, businessID)
	if err != nil {
		return domain.Order{}, err
	}
	if !allowed {
		return domain.Order{}, domain.ErrForbidden
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, err
	}
	if order == nil || order.BusinessID != businessID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *order, nil
}

// staleTransitionError decides what a zero-row conditional update means.
// An unknown or differently-owned order reports not-found without hinting
// which; an owned order in the wrong status reports invalid state.
func (s *LifecycleService) staleTransitionError(ctx context.Context, orderID, branchID, businessID string) error {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	if branchID != "" && order.BranchID != branchID {
		return domain.ErrOrderNotFound
	}
	if businessID != "" && order.BusinessID != businessID {
		return domain.ErrOrderNotFound
	}
	return domain.ErrInvalidState
}
