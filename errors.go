package gogrid

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel every *ConfigurationError unwraps to.
var ErrConfiguration = errors.New("invalid grid configuration")

// ConfigurationError reports an input combination the grid refuses to
// work with, such as a non-positive page size or an unknown mode. It is
// returned at construction time, never while paginating.
type ConfigurationError struct {
	Field  string // offending input, e.g. "page_size"
	Value  any    // offending value
	Reason string // human-readable explanation
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func newInvalidPageSize(pageSize int) *ConfigurationError {
	return &ConfigurationError{
		Field:  "page_size",
		Value:  pageSize,
		Reason: "must be greater than zero",
	}
}
