// ABOUTME: Host implementation for the default backend
// ABOUTME: Availability, device enumeration and default device lookup
package backend

import (
	"time"

	"github.com/openphonic/openphonic-go/pkg/audio/engine"
	"github.com/openphonic/openphonic-go/pkg/host"
)

const (
	defaultSampleRate = 48000
	defaultChannels   = 2
	defaultTickPeriod = 10 * time.Millisecond

	deviceName = "Default Device"
)

// Config holds backend configuration. The zero value selects the engine
// compiled into this build and a 10 ms render tick.
type Config struct {
	// Engine is the platform audio engine to render into.
	Engine engine.Engine

	// TickPeriod is the render interval. The per-tick buffer size is
	// derived from it: frames = SampleRate * TickPeriod.
	TickPeriod time.Duration
}

// Host is the backend's top-level entry point.
type Host struct {
	eng  engine.Engine
	tick time.Duration
}

// NewHost creates a host backed by cfg's engine.
func NewHost(cfg Config) *Host {
	eng := cfg.Engine
	if eng == nil {
		eng = engine.Default()
	}
	tick := cfg.TickPeriod
	if tick <= 0 {
		tick = defaultTickPeriod
	}
	return &Host{eng: eng, tick: tick}
}

// IsAvailable reports whether this backend can be used. The backend itself
// is always present; engine reachability is checked per call by the device
// lookups.
func (h *Host) IsAvailable() bool {
	return true
}

// Devices returns an iterator over the backend's devices: the single
// default device if the engine is reachable, nothing otherwise.
func (h *Host) Devices() (host.DeviceIterator, error) {
	return newDevices(h), nil
}

// DefaultInputDevice returns no device: input capture is not implemented
// in this backend.
func (h *Host) DefaultInputDevice() (host.Device, bool) {
	return nil, false
}

// DefaultOutputDevice returns the singleton output device if the engine is
// reachable.
func (h *Host) DefaultOutputDevice() (host.Device, bool) {
	if !h.eng.Available() {
		return nil, false
	}
	return Device{h: h}, true
}
