// Package usecase defines the error taxonomy shared by the command and query
// layers. Handlers translate these marks into HTTP statuses; orchestrators
// attach them with errs.Mark so the original cause stays inspectable.
package usecase

import "errors"

var (
	// ErrValidation marks malformed or semantically invalid requests.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing resource on any collaborator or in the ledger.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict marks a lost conditional update or a state precondition that
	// no longer holds (seat taken, proposal already settled, trade lock).
	ErrConflict = errors.New("resource conflict")

	// ErrUpstreamUnavailable marks a collaborator that could not be reached or
	// answered with a server error before any side effect was committed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrPaymentDeclined marks a charge the payment service rejected. Locked
	// resources are left in place so the caller may retry payment.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPostPaymentInconsistency marks the one state this service cannot
	// repair on its own: money moved but resource confirmation exhausted its
	// retries. Callers must not retry the whole saga blindly.
	ErrPostPaymentInconsistency = errors.New("post-payment inconsistency")

	// ErrPartialOutcome marks a multi-item operation where some items settled
	// and others failed; the result payload carries the per-item breakdown.
	ErrPartialOutcome = errors.New("partial outcome")
)
