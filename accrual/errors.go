/*
errors.go - Error taxonomy for the accrual pipeline

PURPOSE:
  Two caller-correctable categories cover every failure:
  1. InvalidInput     - A numeric field is outside its declared domain
  2. InvalidClaimType - Claim type not in the fixed five-member set

  Both are detected eagerly, before any arithmetic, and reject the whole
  request. There is no transient failure source, so no retry category.

USAGE:
  if errors.Is(err, accrual.ErrInvalidInput) { ... }

  var inputErr *accrual.InputError
  if errors.As(err, &inputErr) { log(inputErr.Field) }

SEE ALSO:
  - calculator.go: Emits these errors from validation
  - api: Maps client errors to HTTP 400
*/
package accrual

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when a numeric field is outside its
	// declared domain (negative amounts, out-of-range discount rate).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidClaimType is returned when a claim type is not one of the
	// five recognized types.
	ErrInvalidClaimType = errors.New("invalid claim type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError reports which field failed validation and why.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// UnknownClaimTypeError reports an unrecognized claim type.
type UnknownClaimTypeError struct {
	ClaimType string
}

func (e *UnknownClaimTypeError) Error() string {
	return fmt.Sprintf("invalid claim type: %q is not a recognized claim type", e.ClaimType)
}

func (e *UnknownClaimTypeError) Unwrap() error {
	return ErrInvalidClaimType
}

// IsClientError returns true if the error is due to invalid caller input.
// Every error the pipeline produces is caller-correctable today; the
// helper exists so callers don't hardcode that assumption.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidClaimType)
}
