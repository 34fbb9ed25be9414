// Package errors provides the error type for the message-storage service client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrRemoteResource = errors.New("remote resource error")
	ErrEmptyAddress   = errors.New("service address is empty")
	ErrInvalidMode    = errors.New("invalid display mode")
)

// RemoteResourceError covers every failed call to the message resource.
// Transport failures and non-success HTTP statuses share this one type;
// StatusCode is 0 when no response was received.
type RemoteResourceError struct {
	Op         string // "get message", "put message", ...
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteResourceError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		if msg == "" {
			return fmt.Sprintf("%s failed [%d] at %s", e.Op, e.StatusCode, e.Endpoint)
		}
		return fmt.Sprintf("%s failed [%d] at %s: %s", e.Op, e.StatusCode, e.Endpoint, msg)
	}
	return fmt.Sprintf("%s failed at %s: %s", e.Op, e.Endpoint, msg)
}

// Unwrap returns the underlying transport error, if any
func (e *RemoteResourceError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *RemoteResourceError) Is(target error) bool {
	if target == ErrRemoteResource {
		return true
	}
	_, ok := target.(*RemoteResourceError)
	return ok
}

// NewTransportError creates a RemoteResourceError for a request that got no response
func NewTransportError(op, method, endpoint string, cause error) *RemoteResourceError {
	return &RemoteResourceError{
		Op:       op,
		Method:   method,
		Endpoint: endpoint,
		Err:      cause,
	}
}

// NewStatusError creates a RemoteResourceError for a non-success response
func NewStatusError(op, method, endpoint string, statusCode int, message string) *RemoteResourceError {
	return &RemoteResourceError{
		Op:         op,
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsRemoteResourceError reports whether err is (or wraps) a RemoteResourceError
func IsRemoteResourceError(err error) bool {
	var rre *RemoteResourceError
	return errors.As(err, &rre)
}

// IsTransportFailure reports whether err is a RemoteResourceError without an HTTP status
func IsTransportFailure(err error) bool {
	var rre *RemoteResourceError
	if errors.As(err, &rre) {
		return rre.StatusCode == 0
	}
	return false
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var rre *RemoteResourceError
	if errors.As(err, &rre) {
		return rre.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var rre *RemoteResourceError
	if errors.As(err, &rre) {
		return rre.Endpoint
	}
	return ""
}
