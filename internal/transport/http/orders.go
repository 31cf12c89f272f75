package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/app"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/clock"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

// actorHeader carries the authenticated identity resolved upstream;
// authentication itself happens before this service.
const actorHeader = "X-Actor-ID"

// OrderConfirmer is the minimal interface needed to confirm an order.
type OrderConfirmer interface {
	Confirm(ctx context.Context, in app.ConfirmOrderInput) (domain.Order, error)
}

// HandleConfirmOrder returns an HTTP handler for the confirm transition.
func HandleConfirmOrder(svc OrderConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}

		var req confirmOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.BranchID == "" {
			writeError(w, http.StatusBadRequest, codeBranchRequired, "branch_id is required")
			return
		}

		order, err := svc.Confirm(r.Context(), app.ConfirmOrderInput{
			OrderID:  chi.URLParam(r, "orderID"),
			ActorID:  actor,
			BranchID: req.BranchID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type confirmOrderRequest struct {
	BranchID string `json:"branch_id"`
}

// OrderShipper is the minimal interface needed to ship an order.
type OrderShipper interface {
	Ship(ctx context.Context, in app.ShipOrderInput) (domain.Order, error)
}

// HandleShipOrder returns an HTTP handler for the ship transition. The
// merchant supplies a business-day window; the two delivery-estimate dates
// are derived here, after the window is validated, so the date helper never
// sees an inverted range.
func HandleShipOrder(svc OrderShipper, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}

		var req shipOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.BusinessID == "" {
			writeError(w, http.StatusBadRequest, codeBusinessRequired, "business_id is required")
			return
		}
		if req.ETAMinDays < 0 || req.ETAMaxDays < 0 || req.ETAMinDays > req.ETAMaxDays {
			writeError(w, http.StatusBadRequest, codeInvalidETAWindow, "eta_min_days must be between 0 and eta_max_days")
			return
		}

		earliest, latest := app.DeliveryEstimate(clk.Now(), req.ETAMinDays, req.ETAMaxDays)

		order, err := svc.Ship(r.Context(), app.ShipOrderInput{
			OrderID:        chi.URLParam(r, "orderID"),
			ActorID:        actor,
			BusinessID:     req.BusinessID,
			ShippingDocURL: req.ShippingDocumentURL,
			ETAEarliest:    earliest,
			ETALatest:      latest,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type shipOrderRequest struct {
	BusinessID          string `json:"business_id"`
	ShippingDocumentURL string `json:"shipping_document_url"`
	ETAMinDays          int    `json:"eta_min_days"`
	ETAMaxDays          int    `json:"eta_max_days"`
}

// OrderDeliverer is the minimal interface needed to mark delivery.
type OrderDeliverer interface {
	Deliver(ctx context.Context, in app.DeliverOrderInput) (domain.Order, error)
}

// HandleDeliverOrder returns an HTTP handler for the deliver transition.
func HandleDeliverOrder(svc OrderDeliverer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}

		var req deliverOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.BusinessID == "" {
			writeError(w, http.StatusBadRequest, codeBusinessRequired, "business_id is required")
			return
		}

		order, err := svc.Deliver(r.Context(), app.DeliverOrderInput{
			OrderID:    chi.URLParam(r, "orderID"),
			ActorID:    actor,
			BusinessID: req.BusinessID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type deliverOrderRequest struct {
	BusinessID string `json:"business_id"`
}

// OrderCanceler is the minimal interface needed to cancel an order.
type OrderCanceler interface {
	Cancel(ctx context.Context, in app.CancelOrderInput) (app.CancelOrderResult, error)
}

// HandleCancelOrder returns an HTTP handler for the cancel transition. The
// response carries the generated ledger reference alongside the order.
func HandleCancelOrder(svc OrderCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get(actorHeader)
		if actor == "" {
			writeError(w, http.StatusUnauthorized, codeActorRequired, "actor id required")
			return
		}

		var req cancelOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.BusinessID == "" {
			writeError(w, http.StatusBadRequest, codeBusinessRequired, "business_id is required")
			return
		}

		res, err := svc.Cancel(r.Context(), app.CancelOrderInput{
			OrderID:    chi.URLParam(r, "orderID"),
			ActorID:    actor,
			BusinessID: req.BusinessID,
			Reason:     req.Reason,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := cancelOrderResponse{
			Order:           toOrderResponse(res.Order),
			LedgerReference: res.LedgerReference,
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type cancelOrderRequest struct {
	BusinessID string `json:"business_id"`
	Reason     string `json:"reason"`
}

type cancelOrderResponse struct {
	Order           orderResponse `json:"order"`
	LedgerReference string        `json:"ledger_reference"`
}

// OrderGetter is the minimal interface needed for the order detail view.
type OrderGetter interface {
	GetOrder(ctx context.Context, orderID, actorID, businessID string) (domain.Order, error)
}

// HandleGetOrder returns a read-only handler for the admin detail view.
func HandleGetOrder(svc OrderGetter) http.HandlerFunc {
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

		order, err := svc.GetOrder(r.Context(), chi.URLParam(r, "orderID"), actor, businessID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type orderResponse struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branch_id"`
	BusinessID  string    `json:"business_id"`
	RegistryID  string    `json:"registry_id"`
	PurchaserID string    `json:"purchaser_id"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	CreatedAt   time.Time `json:"created_at"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedBy string     `json:"confirmed_by,omitempty"`

	CanceledAt   *time.Time `json:"canceled_at,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`

	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	ShippedBy      string     `json:"shipped_by,omitempty"`
	ShippingDocURL string     `json:"shipping_document_url,omitempty"`
	ETAEarliest    *time.Time `json:"eta_earliest,omitempty"`
	ETALatest      *time.Time `json:"eta_latest,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:             o.ID,
		BranchID:       o.BranchID,
		BusinessID:     o.BusinessID,
		RegistryID:     o.RegistryID,
		PurchaserID:    o.PurchaserID,
		Status:         string(o.Status),
		TotalCents:     o.TotalCents,
		CreatedAt:      o.CreatedAt,
		ConfirmedAt:    o.ConfirmedAt,
		ConfirmedBy:    o.ConfirmedBy,
		CanceledAt:     o.CanceledAt,
		CancelReason:   o.CancelReason,
		ShippedAt:      o.ShippedAt,
		ShippedBy:      o.ShippedBy,
		ShippingDocURL: o.ShippingDocURL,
		ETAEarliest:    o.ETAEarliest,
		ETALatest:      o.ETALatest,
		DeliveredAt:    o.DeliveredAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
