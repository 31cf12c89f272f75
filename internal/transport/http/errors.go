package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Knoott-Technologies/knoott-supplier-admin-sub003/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidID           = "invalid_id"
	codeActorRequired       = "actor_required"
	codeBranchRequired      = "branch_id_required"
	codeBusinessRequired    = "business_id_required"
	codeReasonRequired      = "reason_required"
	codeShippingDocRequired = "shipping_document_required"
	codeInvalidETAWindow    = "invalid_eta_window"
	codeOrderNotFound       = "order_not_found"
	codeRegistryNotFound    = "registry_not_found"
	codeInvalidState        = "invalid_state"
	codeConflict            = "conflict"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError translates the core's failure kinds into HTTP responses.
// Input-level invalid-state flavors map to 400 with a specific code; a
// stale-status transition and a ledger reference collision both map to 409
// with distinct codes so callers know which to retry.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, codeReasonRequired, err.Error())
	case errors.Is(err, domain.ErrShippingDocRequired):
		writeError(w, http.StatusBadRequest, codeShippingDocRequired, err.Error())
	case errors.Is(err, domain.ErrETAWindowRequired), errors.Is(err, domain.ErrInvalidETAWindow):
		writeError(w, http.StatusBadRequest, codeInvalidETAWindow, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrRegistryNotFound):
		writeError(w, http.StatusNotFound, codeRegistryNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, codeInvalidState, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
