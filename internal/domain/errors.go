package domain

import "errors"

// ─── Request Errors ─────────────────────────────────────────────────────────
// A RequestError means the caller supplied bad input or asked for a
// transition the ledger refuses (below-zero). It maps to a 400 response and
// is never logged as a system fault. Anything else coming out of a tracker
// operation is a store failure and maps to a 500 with a generic message.

// RequestError carries a fixed, human-readable rejection reason.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string { return "invalid request: " + e.Reason }

var (
	ErrInvalidDate     = &RequestError{Reason: "invalid date"}
	ErrInvalidNutrient = &RequestError{Reason: "invalid nutrient"}
	ErrCountAtZero     = &RequestError{Reason: "can't unconsume because the count is already 0"}
	ErrGoalAtZero      = &RequestError{Reason: "can't decrease because the goal is already 0"}
)

// IsRequestError reports whether err is a caller-fault rejection.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
