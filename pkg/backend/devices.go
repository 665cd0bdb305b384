// ABOUTME: Device enumerator for the default backend
// ABOUTME: One-shot iterator yielding the singleton device at most once
package backend

import (
	"github.com/openphonic/openphonic-go/pkg/host"
)

// Devices iterates the backend's device list. Construction takes a single
// engine-availability snapshot; the snapshot is not re-checked, so two
// enumerators constructed at different times may disagree if availability
// changed in between. Re-enumerate by calling Host.Devices again.
type Devices struct {
	h         *Host
	remaining bool
}

func newDevices(h *Host) *Devices {
	return &Devices{h: h, remaining: h.eng.Available()}
}

// Next yields the default device on the first call if the engine was
// reachable at construction, and nothing forever after.
func (d *Devices) Next() (host.Device, bool) {
	if !d.remaining {
		return nil, false
	}
	d.remaining = false
	return Device{h: d.h}, true
}
