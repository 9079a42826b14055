package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("service unavailable")
)

// NotFound reports a missing required entity, e.g. "proposal 12 not found".
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v %w", entity, id, ErrNotFound)
}

// Validation wraps ErrValidation with a human readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UnavailableError marks an unconfigured or unreachable external collaborator.
// Remediation is shown to the caller as is.
type UnavailableError struct {
	Service     string
	Remediation string
	Err         error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
	}
	return e.Service + " unavailable"
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnavailable, e.Err}
	}
	return []error{ErrUnavailable}
}

// Unavailable builds an UnavailableError.
func Unavailable(service, remediation string, cause error) error {
	return &UnavailableError{Service: service, Remediation: remediation, Err: cause}
}

// Remediation returns the remediation text carried by err, if any.
func Remediation(err error) string {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Remediation
	}
	return ""
}
