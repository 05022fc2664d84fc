package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Message is user-presentable and
// prefers server-supplied text over a generic fallback.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrMateriaNotFound = NewError(ErrCodeNotFound, "matéria não encontrada")
	ErrTarefaNotFound  = NewError(ErrCodeNotFound, "tarefa não encontrada")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "sessão não encontrada")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "não autorizado")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "dados inválidos")
	ErrNotConfigured   = NewError(ErrCodeUnavailable, "endpoint não configurado")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// UserMessage extracts a presentable message from any error, falling back to
// the provided generic text when the error carries none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var dErr *Error
	if errors.As(err, &dErr) && dErr.Message != "" {
		return dErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
