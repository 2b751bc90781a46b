package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrDomainMismatch = errors.New("domain mismatch")
)

// ConfigurationError reports an unknown identifier or inconsistent setting.
// It is raised while the pipeline is constructed, before any document is read.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

// Unwrap exposes the sentinel so callers can use errors.Is(err, ErrInvalidConfig)
func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

// Unknown builds the error for an identifier with no registered implementation
func Unknown(field, value string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: "unknown identifier"}
}

// DomainMismatch builds the error for ranking data computed over another domain
func DomainMismatch(want, got string) *ConfigurationError {
	return &ConfigurationError{
		Field:  "domain",
		Value:  got,
		Reason: fmt.Sprintf("ranking data belongs to %q, candidates to %q", got, want),
		Err:    ErrDomainMismatch,
	}
}
