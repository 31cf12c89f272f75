package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/app"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

// OverdueClassifier is the minimal interface needed for the alerts view.
type OverdueClassifier interface {
	OverdueOrders(ctx context.Context, businessID string) (app.AlertReport, error)
}

// HandleAlerts returns the SLA-breach listing for one business. The
// classification is recomputed on every request; nothing is persisted.
func HandleAlerts(svc OverdueClassifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}
		businessID := r.URL.Query().Get("business_id")
		if businessID == "" {
			writeError(w, http.StatusBadRequest, codeBusinessRequired, "business_id is required")
			return
		}

		report, err := svc.OverdueOrders(r.Context(), businessID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAlertsResponse(report))
	}
}

type alertsResponse struct {
	UnconfirmedOverdue []alertEntry `json:"unconfirmed_overdue"`
	UnshippedOverdue   []alertEntry `json:"unshipped_overdue"`
}

type alertEntry struct {
	OrderID     string     `json:"order_id"`
	BranchID    string     `json:"branch_id"`
	Status      string     `json:"status"`
	TotalCents  int64      `json:"total_cents"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

func toAlertsResponse(report app.AlertReport) alertsResponse {
	resp := alertsResponse{
		UnconfirmedOverdue: make([]alertEntry, 0, len(report.UnconfirmedOverdue)),
		UnshippedOverdue:   make([]alertEntry, 0, len(report.UnshippedOverdue)),
	}
	for _, o := range report.UnconfirmedOverdue {
		resp.UnconfirmedOverdue = append(resp.UnconfirmedOverdue, toAlertEntry(o))
	}
	for _, o := range report.UnshippedOverdue {
		resp.UnshippedOverdue = append(resp.UnshippedOverdue, toAlertEntry(o))
	}
	return resp
}

func toAlertEntry(o domain.Order) alertEntry {
	return alertEntry{
		OrderID:     o.ID,
		BranchID:    o.BranchID,
		Status:      string(o.Status),
		TotalCents:  o.TotalCents,
		CreatedAt:   o.CreatedAt,
		ConfirmedAt: o.ConfirmedAt,
	}
}
