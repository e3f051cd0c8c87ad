package provider

import (
	"errors"
	"fmt"
)

// Kind classifies provider errors.
type Kind int

const (
	// KindInvalidArgument means the input was rejected before any request was made.
	KindInvalidArgument Kind = iota + 1
	// KindHTTPFailure means the transport failed or the upstream answered with a non-2xx status.
	KindHTTPFailure
	// KindTransformationFailed means the upstream payload could not be parsed or mapped.
	KindTransformationFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindHTTPFailure:
		return "http failure"
	case KindTransformationFailed:
		return "transformation failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgument      = errors.New(KindInvalidArgument.String())
	ErrHTTPFailure          = errors.New(KindHTTPFailure.String())
	ErrTransformationFailed = errors.New(KindTransformationFailed.String())
)

// Error is returned by every provider operation.
type Error struct {
	Kind    Kind
	Message string
	// Code is the upstream status code for HTTP failures, 0 otherwise.
	Code int
	Err  error
}

// Error returns the message verbatim so callers can match on it.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrHTTPFailure:
		return e.Kind == KindHTTPFailure
	case ErrTransformationFailed:
		return e.Kind == KindTransformationFailed
	}
	return false
}

// InvalidArgument creates an error for rejected input.
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// HTTPFailure wraps a transport error, keeping its message and status code.
func HTTPFailure(err error) *Error {
	e := &Error{Kind: KindHTTPFailure, Message: err.Error(), Err: err}
	var se interface{ StatusCode() int }
	if errors.As(err, &se) {
		e.Code = se.StatusCode()
	}
	return e
}

// TransformationFailed wraps a parse error under a caller-facing message.
func TransformationFailed(message string, err error) *Error {
	return &Error{Kind: KindTransformationFailed, Message: message, Err: err}
}

// TransformationMessage is the message for a parse failure; code may be empty for batch calls.
func TransformationMessage(code string) string {
	if code == "" {
		return "Data transformation failed, stock may be closed or not exists."
	}
	return fmt.Sprintf("Data transformation failed, stock %s may be closed or not exists.", code)
}
