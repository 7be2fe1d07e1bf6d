/*
errors.go - Boundary errors for the adjudication engine

PURPOSE:

	The engine never signals a hard failure for malformed business data; that
	always resolves to a low-confidence Reject result. The only error class
	here is "invalid call": nil top-level arguments, rejected before any rule
	runs.

USAGE:

	report, err := eng.Evaluate(policy, claim)
	if errors.Is(err, engine.ErrNilPolicy) { ... }
*/
package engine

import "errors"

var (
	// ErrNilPolicy is returned when Evaluate is called without policy data.
	ErrNilPolicy = errors.New("policy data is nil")

	// ErrNilClaim is returned when Evaluate is called without claim data.
	// Callers with no claim context should pass an empty ClaimData.
	ErrNilClaim = errors.New("claim data is nil")
)

// IsInvalidCall reports whether err is a caller mistake rather than an
// adjudication outcome.
func IsInvalidCall(err error) bool {
	return errors.Is(err, ErrNilPolicy) || errors.Is(err, ErrNilClaim)
}
