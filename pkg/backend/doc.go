// ABOUTME: Default audio backend package
// ABOUTME: Singleton device, fixed 2ch/48kHz f32 output, interval-driven rendering
// Package backend implements the host.Host contract on top of a platform
// audio engine (pkg/audio/engine).
//
// The backend exposes a single default output device with one fixed
// configuration: 2 channels, 48000 Hz, f32 samples. Input capture is not
// implemented; every input operation fails with a typed error. Rendering is
// driven by a fixed-period interval that pulls interleaved samples from the
// application's data callback, repacks them into the engine's planar
// layout, and plays each chunk on a fire-and-forget source node.
//
// Example:
//
//	h := backend.NewHost(backend.Config{})
//	dev, ok := h.DefaultOutputDevice()
//	if !ok {
//	    log.Fatal("no output device")
//	}
//	stream, err := dev.BuildOutputStream(audio.StreamConfig{Channels: 2, SampleRate: 48000},
//	    audio.F32, fill, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
package backend
