package domain

import (
	"errors"
	"fmt"
)

// The four terminal failure kinds surfaced by order transitions. None are
// retried by the core; Conflict invites the caller to retry the whole
// cancel operation with a freshly derived reference count.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("actor lacks membership")
	ErrInvalidState  = errors.New("status does not permit transition")
	ErrConflict      = errors.New("concurrent write conflict")
)

var (
	ErrRegistryNotFound = errors.New("registry not found")
	ErrInvalidID        = errors.New("invalid id")
)

// Input failures that disallow a transition; all are InvalidState flavors
// so callers can match on the kind with errors.Is.
var (
	ErrReasonRequired      = fmt.Errorf("%w: cancellation reason required", ErrInvalidState)
	ErrShippingDocRequired = fmt.Errorf("%w: shipping document required", ErrInvalidState)
	ErrETAWindowRequired   = fmt.Errorf("%w: eta window required", ErrInvalidState)
	ErrInvalidETAWindow    = fmt.Errorf("%w: eta earliest after latest", ErrInvalidState)
)
