package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/happyfarm/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     map[string][]string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, fields map[string][]string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Fields: fields}
}

// NewValidationError reports malformed or missing input. message is usually the first field message.
func NewValidationError(message string, fields map[string][]string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, fields)
}

// NewFieldError is a validation error on a single field.
func NewFieldError(field, message string) error {
	return NewValidationError(message, map[string][]string{field: {message}})
}

// NewNotFound covers both "absent" and "not owned by the caller".
func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewBusinessRule reports a lifecycle rule rejection.
func NewBusinessRule(message string, err error) error {
	return &DomainError{Code: "BUSINESS_RULE", Message: message, HTTPStatus: http.StatusBadRequest, Err: err}
}

func NewTooManyRequests(message string) error {
	return NewDomainError("TOO_MANY_REQUESTS", message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Server Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var policyErr *domain.PolicyError
	if errors.As(err, &policyErr) {
		return NewBusinessRule(policyErr.Message, policyErr).(*DomainError)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("Resource not found").(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// MapError is ToDomainError typed as error.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch err.Code {
	case http.StatusNotFound:
		return NewNotFound(err.Message).(*DomainError)
	case http.StatusUnauthorized:
		return NewUnauthorized(err.Message).(*DomainError)
	case http.StatusUnprocessableEntity:
		return NewValidationError(err.Message, nil).(*DomainError)
	}
	if err.Code >= http.StatusInternalServerError {
		return NewInternalError(err).(*DomainError)
	}
	return NewDomainError(http.StatusText(err.Code), err.Message, err.Code, nil)
}
