package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/app"
	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

type fakeAlerts struct {
	report app.AlertReport
	err    error
}

func (f *fakeAlerts) OverdueOrders(_ context.Context, _ string) (app.AlertReport, error) {
	return f.report, f.err
}

func TestHandleAlerts(t *testing.T) {
	t.Parallel()

	get := func(svc OverdueClassifier, target, actor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if actor != "" {
			req.Header.Set(actorHeader, actor)
		}
		rec := httptest.NewRecorder()
		HandleAlerts(svc)(rec, req)
		return rec
	}

	t.Run("returns both buckets", func(t *testing.T) {
		now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
		confirmed := now.AddDate(0, 0, -3)
		svc := &fakeAlerts{report: app.AlertReport{
			UnconfirmedOverdue: []domain.Order{{ID: "o-1", Status: domain.OrderStatusRequiresConfirmation, CreatedAt: now.AddDate(0, 0, -2)}},
			UnshippedOverdue:   []domain.Order{{ID: "o-2", Status: domain.OrderStatusPending, ConfirmedAt: &confirmed}},
		}}

		rec := get(svc, "/alerts?business_id=biz-1", "actor-1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp alertsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.UnconfirmedOverdue) != 1 || resp.UnconfirmedOverdue[0].OrderID != "o-1" {
			t.Fatalf("unexpected unconfirmed bucket: %+v", resp.UnconfirmedOverdue)
		}
		if len(resp.UnshippedOverdue) != 1 || resp.UnshippedOverdue[0].OrderID != "o-2" {
			t.Fatalf("unexpected unshipped bucket: %+v", resp.UnshippedOverdue)
		}
	})

	t.Run("empty report serializes as empty arrays", func(t *testing.T) {
		rec := get(&fakeAlerts{}, "/alerts?business_id=biz-1", "actor-1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		var resp map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		for _, key := range []string{"unconfirmed_overdue", "unshipped_overdue"} {
			if string(resp[key]) != "[]" {
				t.Fatalf("expected %s to be [], got %s", key, resp[key])
			}
		}
	})

	t.Run("requires actor and business id", func(t *testing.T) {
		rec := get(&fakeAlerts{}, "/alerts?business_id=biz-1", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		rec = get(&fakeAlerts{}, "/alerts", "actor-1")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := decodeErrorCode(t, rec); code != codeBusinessRequired {
			t.Fatalf("expected %s, got %s", codeBusinessRequired, code)
		}
	})

	t.Run("service errors map through", func(t *testing.T) {
		rec := get(&fakeAlerts{err: domain.ErrInvalidID}, "/alerts?business_id=nope", "actor-1")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
