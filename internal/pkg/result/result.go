// Package result provides the envelope every use case returns to its caller.
//
// A Result carries a success flag, a payload, a message suitable for display and
// a coarse Status that transports translate into protocol codes. Expected business
// failures are returned as failed results, never as Go errors; FromError classifies
// unexpected errors at the use case boundary.
package result

import (
	"errors"

	"salesorder/internal/pkg/errs"
)

// Status is the transport-neutral outcome classification.
type Status int

const (
	OK Status = iota + 1
	Created
	BadRequest
	Forbidden
	NotFound
	InternalServerError
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case BadRequest:
		return "BadRequest"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "NotFound"
	case InternalServerError:
		return "InternalServerError"
	default:
		return "Unknown"
	}
}

// Result is the uniform success-or-failure envelope.
type Result[T any] struct {
	data    T
	message string
	status  Status
	success bool
}

// Success wraps a payload. status should be OK or Created.
func Success[T any](data T, message string, status Status) Result[T] {
	return Result[T]{data: data, message: message, status: status, success: true}
}

// Failure builds a failed result with the zero payload.
func Failure[T any](message string, status Status) Result[T] {
	return Result[T]{message: message, status: status}
}

// FromError builds a failed result whose message is err's text and whose status is Classify(err).
func FromError[T any](err error) Result[T] {
	return Failure[T](err.Error(), Classify(err))
}

// Classify maps the errs sentinels onto a Status. Anything unrecognised is an
// InternalServerError.
func Classify(err error) Status {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, errs.ErrObjectNotFound):
		return NotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return Forbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return BadRequest
	default:
		return InternalServerError
	}
}

func (r Result[T]) IsSuccess() bool {
	return r.success
}

func (r Result[T]) Data() T {
	return r.data
}

func (r Result[T]) Message() string {
	return r.message
}

func (r Result[T]) Status() Status {
	return r.status
}
