// ABOUTME: Host abstraction package
// ABOUTME: Interfaces for hosts, devices, streams and device iteration
// Package host defines the generic contract between applications and audio
// backends: a Host enumerates Devices, a Device builds Streams, and a Stream
// drives the application's data callback until it is paused or closed.
//
// Backends live in their own packages (see pkg/backend for the default one)
// and satisfy these interfaces.
//
// Example:
//
//	h := backend.NewHost(backend.Config{})
//	dev, ok := h.DefaultOutputDevice()
//	if !ok {
//	    log.Fatal("no output device")
//	}
//	stream, err := dev.BuildOutputStream(cfg, audio.F32, fill, nil)
package host
