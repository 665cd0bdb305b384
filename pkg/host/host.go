// ABOUTME: Generic host/device/stream interface definitions
// ABOUTME: Common contract implemented by every audio backend
package host

import (
	"github.com/openphonic/openphonic-go/pkg/audio"
)

// DataCallback fills (output) or consumes (input) one interleaved chunk of
// samples. It is invoked synchronously, once per render tick, and never
// concurrently with itself.
type DataCallback func(*audio.Data)

// ErrorCallback receives errors that occur on a running stream.
type ErrorCallback func(error)

// Host is a backend's top-level entry point.
type Host interface {
	// IsAvailable reports whether this backend is usable on the current
	// platform.
	IsAvailable() bool

	// Devices returns an iterator over the devices currently visible to
	// the backend. The iterator is finite; construct a new one to
	// re-enumerate.
	Devices() (DeviceIterator, error)

	// DefaultInputDevice returns the default capture device, if any.
	DefaultInputDevice() (Device, bool)

	// DefaultOutputDevice returns the default playback device, if any.
	DefaultOutputDevice() (Device, bool)
}

// Device is a named audio endpoint capable of producing or consuming sample
// streams.
type Device interface {
	Name() (string, error)

	SupportedInputConfigs() ([]audio.SupportedStreamConfigRange, error)
	SupportedOutputConfigs() ([]audio.SupportedStreamConfigRange, error)

	DefaultInputConfig() (audio.SupportedStreamConfig, error)
	DefaultOutputConfig() (audio.SupportedStreamConfig, error)

	BuildInputStream(cfg audio.StreamConfig, format audio.SampleFormat, data DataCallback, errcb ErrorCallback) (Stream, error)
	BuildOutputStream(cfg audio.StreamConfig, format audio.SampleFormat, data DataCallback, errcb ErrorCallback) (Stream, error)
}

// Stream is an active audio rendering session bound to one device.
type Stream interface {
	// Play resumes rendering.
	Play() error

	// Pause suspends rendering until the next Play.
	Pause() error

	// Close releases the handle. Rendering stops once the last handle to
	// the underlying stream has been closed.
	Close() error
}

// DeviceIterator walks a finite device enumeration.
type DeviceIterator interface {
	// Next returns the next device, or false when the sequence is
	// exhausted.
	Next() (Device, bool)
}
