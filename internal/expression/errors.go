package expression

import (
	"errors"
	"fmt"
)

// Reasons a token is rejected. They are wrapped by ValidationError and can be
// matched with errors.Is.
var (
	ErrRangeArity       = errors.New("range must have exactly two bounds")
	ErrNotInteger       = errors.New("not an integer")
	ErrNonPositiveBound = errors.New("range bounds must be positive")
	ErrRangeTooLong     = errors.New("range covers too many articles")
)

// ValidationError reports an expression that could not be parsed.
type ValidationError struct {
	Input string // The full expression
	Token string // The first token that failed
	Err   error  // One of the Err* reasons above
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid expression %q: token %q: %v", e.Input, e.Token, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
