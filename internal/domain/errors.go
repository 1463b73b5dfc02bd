package domain

import "errors"

var (
	ErrLifecycleViolation = errors.New("lifecycle violation")
	ErrAlreadySacrificed  = errors.New("animal already sacrificed")
	ErrNotEligible        = errors.New("animal not eligible for sacrifice")
)

// PolicyError is a business-rule rejection carrying the user-facing message.
// Kind is one of the sentinel errors above so callers can use errors.Is.
type PolicyError struct {
	Kind    error
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

func (e *PolicyError) Unwrap() error {
	return e.Kind
}

func newPolicyError(kind error, message string) *PolicyError {
	return &PolicyError{Kind: kind, Message: message}
}
