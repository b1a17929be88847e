package types

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies application errors so controllers can map them to an
// HTTP status without inspecting message strings.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindValidation        ErrorKind = "VALIDATION"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindConflict          ErrorKind = "CONFLICT"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewInvalidState(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

// NewInsufficientStock messages always carry the "Stock insuficiente" prefix;
// the frontend special-cases that substring.
func NewInsufficientStock(message string) *AppError {
	return &AppError{Kind: KindInsufficientStock, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// KindOf extracts the kind of an error chain, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// StatusCode maps an error to the HTTP status controllers should answer with.
// Validation, invalid-state and stock failures are client errors; conflicts
// from concurrent dispatches are 409; anything unclassified is a 500.
func StatusCode(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindInvalidState, KindInsufficientStock:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
