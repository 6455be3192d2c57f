/*
errors.go - Error taxonomy for the bracket classifier

PURPOSE:
  A single caller-correctable category: InvalidInput, raised when a
  categorical field holds a value outside its declared set or the
  investigation duration is negative. Detected eagerly, before scoring;
  a failed check rejects the whole request.

SEE ALSO:
  - rules.go: Emits these errors from validation
*/
package bracket

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a profile field is outside its
// declared domain.
var ErrInvalidInput = errors.New("invalid input")

// ProfileError reports which profile field failed validation and why.
type ProfileError struct {
	Field  string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ProfileError) Unwrap() error {
	return ErrInvalidInput
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
