package api

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned for bodies or amounts that cannot be decoded
	ErrParse = errors.New("parse error")
	// ErrRetryExhausted is returned when every attempt hit a server error
	ErrRetryExhausted = errors.New("retries exhausted")
	// ErrTransport is returned when the request never got a response
	ErrTransport = errors.New("transport error")
	// ErrUnexpectedStatus is returned for non-2xx responses that are not retried
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// RetryExhaustedError carries the last server error seen before giving up
type RetryExhaustedError struct {
	URL        string
	Attempts   int
	StatusCode int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("GET %s giving up after %d attempt(s): last status %d", e.URL, e.Attempts, e.StatusCode)
}

func (e *RetryExhaustedError) Unwrap() error {
	return ErrRetryExhausted
}

// StatusError represents a response with a status code the client does not accept
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
