// ABOUTME: Error vocabulary shared by hosts, devices and streams
// ABOUTME: Sentinel errors plus BackendError for platform-specific failures
package audio

import (
	"errors"
	"fmt"
)

// Common errors returned by Device and Stream operations.
var (
	// ErrStreamTypeNotSupported is returned when a device categorically
	// does not support the requested stream direction (e.g. input on an
	// output-only backend).
	ErrStreamTypeNotSupported = errors.New("stream type not supported")

	// ErrStreamConfigNotSupported is returned when the requested stream
	// configuration or sample format cannot be satisfied.
	ErrStreamConfigNotSupported = errors.New("stream configuration not supported")

	// ErrDeviceNotAvailable is returned when the underlying platform
	// audio engine cannot be reached.
	ErrDeviceNotAvailable = errors.New("device not available")
)

// BackendError carries a backend-specific failure description, optionally
// wrapping the underlying platform error.
type BackendError struct {
	Description string
	Err         error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend error: %s: %v", e.Description, e.Err)
	}
	return fmt.Sprintf("backend error: %s", e.Description)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err with a backend-specific description.
func NewBackendError(description string, err error) *BackendError {
	return &BackendError{Description: description, Err: err}
}
