package app

import (
	"context"
	"time"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

const (
	// confirmationSLADays is the whole days an order may sit unconfirmed.
	confirmationSLADays = 1
	// shippingSLADays is the whole days a confirmed order may sit unshipped.
	shippingSLADays = 2
)

// AlertReport lists orders that have breached a fulfillment SLA.
type AlertReport struct {
	UnconfirmedOverdue []domain.Order
	UnshippedOverdue   []domain.Order
}

// ClassifyOverdue flags orders stuck past their SLA window. It is a pure
// function of the snapshot and the supplied instant: nothing is persisted
// and the result is recomputed on every read. Day differences are taken in
// UTC.
func ClassifyOverdue(orders []domain.Order, now time.Time) AlertReport {
	var report AlertReport
	for _, order := range orders {
		switch order.Status {
		case domain.OrderStatusRequiresConfirmation:
			if wholeDaysSince(order.CreatedAt, now) >= confirmationSLADays {
				report.UnconfirmedOverdue = append(report.UnconfirmedOverdue, order)
			}
		case domain.OrderStatusPending:
			if order.ConfirmedAt != nil && wholeDaysSince(*order.ConfirmedAt, now) >= shippingSLADays {
				report.UnshippedOverdue = append(report.UnshippedOverdue, order)
			}
		}
	}
	return report
}

func wholeDaysSince(t, now time.Time) int {
	elapsed := now.UTC().Sub(t.UTC())
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

type AlertRepository interface {
	ListOpenOrders(ctx context.Context, businessID string) ([]domain.Order, error)
}

// AlertService feeds the overdue classifier from a read-only order snapshot
// for one business.
type AlertService struct {
	repo  AlertRepository
	clock clock.Clock
}

func NewAlertService(repo AlertRepository, clk clock.Clock) *AlertService {
	return &AlertService{
		repo:  repo,
		clock: clk,
	}
}

func (s *AlertService) OverdueOrders(ctx context.Context, businessID string) (AlertReport, error) {
	if businessID == "" {
		return AlertReport{}, domain.ErrInvalidID
	}
	orders, err := s.repo.ListOpenOrders(ctx, businessID)
	if err != nil {
		return AlertReport{}, err
	}
	return ClassifyOverdue(orders, s.clock.Now()), nil
}
