package favorites

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorCode uint8

const (
	ErrorCodeInternalError ErrorCode = iota
	ErrorCodeInvalidInput
	ErrorCodeUpstreamUnavailable
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidInput:
		return "InvalidInput"
	case ErrorCodeUpstreamUnavailable:
		return "UpstreamUnavailable"
	}
	return "InternalError"
}

// Error is a failure building a set favorites transaction. The code is for
// operators; callers only ever see the message.
type Error struct {
	Code    ErrorCode
	Message string

	cause error
}

func newInvalidInputError(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: ErrorCodeInvalidInput, Message: fmt.Sprintf(format, args...), cause: cause}
}

func newUpstreamUnavailableError(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: ErrorCodeUpstreamUnavailable, Message: fmt.Sprintf(format, args...), cause: cause}
}

func newInternalError(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: ErrorCodeInternalError, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

// userFacingMessage is what a caller is told about err. Input problems are
// reported in full so the caller can fix them. Upstream and internal causes
// stay in the logs.
func userFacingMessage(err error) string {
	var typed *Error
	if !errors.As(err, &typed) {
		return "internal server error"
	}

	if typed.Code == ErrorCodeInvalidInput {
		return typed.Error()
	}
	return typed.Message
}

// errorCodeOf classifies err, treating anything untyped as internal.
func errorCodeOf(err error) ErrorCode {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return ErrorCodeInternalError
}
