// ABOUTME: Core audio type definitions
// ABOUTME: Defines sample formats, stream configs and capability ranges
package audio

import "fmt"

// SampleFormat identifies the in-memory representation of one sample.
type SampleFormat int

const (
	// F32 is 32-bit IEEE float, the native format of this library.
	F32 SampleFormat = iota

	// I16 is 16-bit signed integer PCM. Declared so callers can request
	// it; no current backend supports it.
	I16
)

// String returns a human-readable format name
func (f SampleFormat) String() string {
	switch f {
	case F32:
		return "f32"
	case I16:
		return "i16"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// SampleSize returns the size of one sample in bytes
func (f SampleFormat) SampleSize() int {
	switch f {
	case F32:
		return 4
	case I16:
		return 2
	default:
		return 0
	}
}

// StreamConfig is the configuration a caller requests a stream with.
type StreamConfig struct {
	Channels   int // number of interleaved channels
	SampleRate int // frames per second (Hz)
}

// SupportedStreamConfig is a fully resolved stream configuration.
type SupportedStreamConfig struct {
	Channels     int
	SampleRate   int
	SampleFormat SampleFormat
}

// Config converts to the plain request form, dropping the sample format.
func (c SupportedStreamConfig) Config() StreamConfig {
	return StreamConfig{Channels: c.Channels, SampleRate: c.SampleRate}
}

// SupportedStreamConfigRange declares one supported combination of channel
// count, sample-rate bounds and sample format. A degenerate range has
// MinSampleRate == MaxSampleRate.
type SupportedStreamConfigRange struct {
	Channels      int
	MinSampleRate int
	MaxSampleRate int
	SampleFormat  SampleFormat
}

// WithMaxSampleRate resolves the range at its maximum rate.
func (r SupportedStreamConfigRange) WithMaxSampleRate() SupportedStreamConfig {
	return SupportedStreamConfig{
		Channels:     r.Channels,
		SampleRate:   r.MaxSampleRate,
		SampleFormat: r.SampleFormat,
	}
}

// Contains reports whether the range covers the given config.
func (r SupportedStreamConfigRange) Contains(cfg StreamConfig) bool {
	return cfg.Channels == r.Channels &&
		cfg.SampleRate >= r.MinSampleRate &&
		cfg.SampleRate <= r.MaxSampleRate
}
