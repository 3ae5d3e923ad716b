package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed taxonomy of handler failures.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindPathRejected        ErrorKind = "path_rejected"
	KindFileNotFound        ErrorKind = "file_not_found"
	KindFileUnreadable      ErrorKind = "file_unreadable"
	KindUnsupportedMimeType ErrorKind = "unsupported_mime_type"
	KindGatewayError        ErrorKind = "gateway_error"
	KindIoError             ErrorKind = "io_error"
)

// Error is the single error-result type returned by command handlers.
// Message is the user-facing line; Err keeps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if strings.HasSuffix(e.Message, ".") {
		return fmt.Sprintf("%s %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a handler error without an underlying cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a handler error around cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the taxonomy kind from err. Errors outside the taxonomy
// report ok=false.
func KindOf(err error) (ErrorKind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}
	return "", false
}
