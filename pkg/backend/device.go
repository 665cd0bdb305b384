// ABOUTME: Device implementation for the default backend
// ABOUTME: Fixed capability reporting and output stream construction
package backend

import (
	"fmt"
	"log"

	"github.com/openphonic/openphonic-go/pkg/audio"
	"github.com/openphonic/openphonic-go/pkg/host"
)

// Device is the backend's singleton default device. It carries no state of
// its own; any two Device values from the same host are interchangeable.
type Device struct {
	h *Host
}

// Name returns the device's fixed label.
func (Device) Name() (string, error) {
	return deviceName, nil
}

// SupportedInputConfigs fails: input capture is not implemented.
func (Device) SupportedInputConfigs() ([]audio.SupportedStreamConfigRange, error) {
	return nil, audio.NewBackendError("input capture is unimplemented", nil)
}

// SupportedOutputConfigs returns the single supported configuration. The
// slice is freshly allocated on every call.
func (Device) SupportedOutputConfigs() ([]audio.SupportedStreamConfigRange, error) {
	return []audio.SupportedStreamConfigRange{
		{
			Channels:      defaultChannels,
			MinSampleRate: defaultSampleRate,
			MaxSampleRate: defaultSampleRate,
			SampleFormat:  audio.F32,
		},
	}, nil
}

// DefaultInputConfig fails: input capture is not implemented.
func (Device) DefaultInputConfig() (audio.SupportedStreamConfig, error) {
	return audio.SupportedStreamConfig{}, audio.ErrStreamTypeNotSupported
}

// DefaultOutputConfig returns the fixed output configuration.
func (Device) DefaultOutputConfig() (audio.SupportedStreamConfig, error) {
	return audio.SupportedStreamConfig{
		Channels:     defaultChannels,
		SampleRate:   defaultSampleRate,
		SampleFormat: audio.F32,
	}, nil
}

// BuildInputStream fails: input capture is not implemented.
func (Device) BuildInputStream(cfg audio.StreamConfig, format audio.SampleFormat, data host.DataCallback, errcb host.ErrorCallback) (host.Stream, error) {
	return nil, audio.ErrStreamConfigNotSupported
}

// BuildOutputStream creates a rendering stream. Only f32 samples are
// supported; the stream always runs at the device's fixed configuration
// regardless of the requested cfg. The returned stream starts in the
// running state.
func (d Device) BuildOutputStream(cfg audio.StreamConfig, format audio.SampleFormat, data host.DataCallback, errcb host.ErrorCallback) (host.Stream, error) {
	if data == nil {
		return nil, fmt.Errorf("data callback must not be nil")
	}
	if format != audio.F32 {
		return nil, fmt.Errorf("%w: sample format %s (backend supports f32 only)",
			audio.ErrStreamConfigNotSupported, format)
	}

	resolved, _ := d.DefaultOutputConfig()
	if (cfg != audio.StreamConfig{}) && cfg != resolved.Config() {
		log.Printf("Requested config %+v not negotiable; using %dHz, %d channels",
			cfg, resolved.SampleRate, resolved.Channels)
	}

	ctx, err := d.h.eng.NewContext()
	if err != nil {
		return nil, audio.NewBackendError("failed to create audio context", err)
	}

	stream := newStream(ctx)
	r := newRenderer(stream.inner, resolved, d.h.tick, data, errcb)

	cancel, err := ctx.SetInterval(r.tick, d.h.tick)
	if err != nil {
		ctx.Close()
		return nil, audio.NewBackendError("failed to register render interval", err)
	}
	stream.inner.cancel = cancel

	log.Printf("Output stream %s created: %dHz, %d channels, f32, tick %v",
		stream.ID(), resolved.SampleRate, resolved.Channels, d.h.tick)

	return stream, nil
}
