package sessionapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures to reach the server or read its reply.
	ErrTransport = errors.New("session api transport failure")
	// ErrAPI marks errors reported by the server in the response body.
	ErrAPI = errors.New("session api error")
	// ErrDecode marks replies that are not the expected JSON.
	ErrDecode = errors.New("session api malformed response")
)

// TransportError wraps a network-level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// APIError is an error the server reported, either as {"error": "..."} or
// as a non-2xx status without a body error.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: server error (HTTP %d): %s", e.Op, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// DecodeError is returned when a reply cannot be decoded or fails schema
// validation.
type DecodeError struct {
	Op     string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response (HTTP %d): %v", e.Op, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
