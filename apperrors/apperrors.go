// Package apperrors defines the error taxonomy shared by the feed, access
// and analytics services and mapped to HTTP statuses by the handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed caller input (filter, sort, window).
// Not retryable.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthRequiredError reports an operation that needs a viewer identity when
// none was supplied. Not retryable.
type AuthRequiredError struct {
	Op string
}

func (e *AuthRequiredError) Error() string {
	return "auth required: " + e.Op
}

func AuthRequired(op string) error {
	return &AuthRequiredError{Op: op}
}

// NotFoundError reports a missing creator or content item.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + e.ID
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// UpstreamUnavailable reports a transient store failure. The caller may
// retry with backoff; this service never retries internally.
type UpstreamUnavailable struct {
	Op  string
	Err error
}

func (e *UpstreamUnavailable) Error() string {
	return "upstream unavailable during " + e.Op + ": " + e.Err.Error()
}

func (e *UpstreamUnavailable) Unwrap() error {
	return e.Err
}

func Upstream(op string, err error) error {
	return &UpstreamUnavailable{Op: op, Err: err}
}

// PartialDataError reports that one leg of a multi-source aggregate failed.
// The whole aggregation is aborted rather than mixing real buckets with
// zero-filled ones a caller could not tell apart from genuine zeros.
type PartialDataError struct {
	Source string
	Err    error
}

func (e *PartialDataError) Error() string {
	return "partial data: source " + e.Source + " failed: " + e.Err.Error()
}

func (e *PartialDataError) Unwrap() error {
	return e.Err
}

func PartialData(source string, err error) error {
	return &PartialDataError{Source: source, Err: err}
}

// HTTPStatus maps a taxonomy error to the status the handlers return.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		auth       *AuthRequiredError
		notFound   *NotFoundError
		upstream   *UpstreamUnavailable
		partial    *PartialDataError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	// Partial wraps the failing leg's upstream error, so it must win over
	// the upstream case.
	case errors.As(err, &partial):
		return http.StatusBadGateway
	case errors.As(err, &upstream):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
