package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Error kinds. Every error returned by the services matches exactly one of
// these through errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrTimeout    = errors.New("request timed out")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
	ErrBadFeed    = errors.New("bad feed")
	ErrInternal   = errors.New("internal error")
)

// ValidationError represents bad or missing client input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError represents a non-success status from a remote API
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Endpoint, e.StatusCode)
}

func (e UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Error carries a kind, a client-safe message and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(endpoint string, statusCode int) error {
	return UpstreamError{Endpoint: endpoint, StatusCode: statusCode}
}

// Timeout wraps cause as a TimeoutError.
func Timeout(message string, cause error) error {
	return &Error{Kind: ErrTimeout, Message: message, Err: cause}
}

// NotFound wraps cause as a NotFoundError.
func NotFound(message string, cause error) error {
	return &Error{Kind: ErrNotFound, Message: message, Err: cause}
}

// Upstream wraps cause as an UpstreamError with a client-safe message.
func Upstream(message string, cause error) error {
	return &Error{Kind: ErrUpstream, Message: message, Err: cause}
}

// BadFeed wraps cause as a BadFeedError.
func BadFeed(message string, cause error) error {
	return &Error{Kind: ErrBadFeed, Message: message, Err: cause}
}

// Internal wraps cause as an InternalError.
func Internal(message string, cause error) error {
	return &Error{Kind: ErrInternal, Message: message, Err: cause}
}

// IsTimeout reports whether err came from an expired deadline, either the
// context's or the http.Client's.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsUnreachable reports whether err means the remote host could not be
// resolved or connected to.
func IsUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// HTTPStatus maps err to the status code returned to clients.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadFeed):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Code maps err to the short error label returned to clients.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrBadFeed):
		return "bad_feed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	default:
		return "internal_error"
	}
}

// Message returns the client-safe description of err. Causes are never
// included.
func Message(err error) string {
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if errors.Is(err, ErrUpstream) {
		return "Upstream API error"
	}
	return "Internal server error"
}
