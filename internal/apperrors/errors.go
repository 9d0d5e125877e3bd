// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code surfaced to API clients.
type Code string

const (
	CodeNotFound               Code = "NOT_FOUND"
	CodeInvalidArgument        Code = "INVALID_ARGUMENT"
	CodeInsufficientStock      Code = "INSUFFICIENT_STOCK"
	CodeEmptyCart              Code = "EMPTY_CART"
	CodeIllegalStateTransition Code = "ILLEGAL_STATE_TRANSITION"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeForbidden              Code = "FORBIDDEN"
	CodeConflict               Code = "CONFLICT"
	CodeInternal               Code = "INTERNAL_ERROR"
)

type Error struct {
	Code    Code
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) *Error {
	return Newf(CodeNotFound, "%s not found", resource)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InsufficientStock(productName string, requested, available int) *Error {
	err := Newf(CodeInsufficientStock,
		"insufficient stock for product %s: requested %d, available %d",
		productName, requested, available)
	err.Details = map[string]interface{}{
		"product":   productName,
		"requested": requested,
		"available": available,
	}
	return err
}

func EmptyCart() *Error {
	return New(CodeEmptyCart, "cart is empty")
}

func IllegalStateTransition(message string) *Error {
	return New(CodeIllegalStateTransition, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// CodeOf classifies any error. Errors outside this package count as internal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
