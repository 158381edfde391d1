package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateThroughput indicates every historical sample is zero,
	// making completion impossible. Detected before any trial runs.
	ErrDegenerateThroughput = errors.New("degenerate throughput: all historical samples are zero")

	// ErrInsufficientHistory indicates the throughput series is too short
	// for the trend estimate. The Monte Carlo result is still produced;
	// callers treat this as a soft condition, not a failure.
	ErrInsufficientHistory = errors.New("insufficient history for trend estimate")
)

// ValidationError reports malformed or missing input. It always blocks the
// forecast entirely: no partial results are produced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
