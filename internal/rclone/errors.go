package rclone

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the daemon answers without a body where one was expected
var ErrNoData = errors.New("no data in response")

// TransportError wraps failures to reach the daemon: connection errors, timeouts, bad URLs
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rclone %s: request failed: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DaemonError is a non-200 answer from the daemon. Message is the daemon's own
// error text when the {error} envelope could be decoded.
type DaemonError struct {
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *DaemonError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("rclone %s: HTTP %d: %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rclone %s: HTTP %d", e.Path, e.StatusCode)
}

func (e *DaemonError) Unwrap() error {
	return e.Err
}

// DecodeError is a 200 answer whose body does not match the expected shape
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("rclone %s: failed to decode response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDaemonError reports whether err was reported by the daemon itself
func IsDaemonError(err error) bool {
	var daemonErr *DaemonError
	return errors.As(err, &daemonErr)
}

// IsDecodeError reports whether err means the client and daemon disagree on a schema
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsTransportError reports whether err happened before the daemon could answer
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
