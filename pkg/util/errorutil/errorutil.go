package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Generic client-facing details.
const (
	DetailInvalidRequest = "Invalid request"
	DetailInternal       = "Internal server error"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Headers    map[string]string
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
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(err error) error {
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    DetailInvalidRequest,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewUnauthorized builds a 401 carrying the bearer challenge header.
func NewUnauthorized(message string) error {
	return &DomainError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Headers:    map[string]string{fiber.HeaderWWWAuthenticate: "Bearer"},
	}
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    DetailInternal,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Errors raised by fiber
// itself keep their status; anything unclassified becomes a 500.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		de := NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code)
		if fiberErr.Code >= http.StatusInternalServerError {
			de.Message = DetailInternal
		}
		if fiberErr.Code == http.StatusUnauthorized {
			de.Headers = map[string]string{fiber.HeaderWWWAuthenticate: "Bearer"}
		}
		return de
	}
	return NewInternalError(err).(*DomainError)
}
