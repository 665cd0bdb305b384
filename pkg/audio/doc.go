// ABOUTME: Audio fundamentals package providing core types
// ABOUTME: Defines sample formats, configs, data views and errors
// Package audio provides the fundamental types shared by every layer of the
// library: sample formats, stream configurations, capability ranges, the
// interleaved Data view handed to data callbacks, and the common error
// vocabulary.
//
// Example:
//
//	cfg := audio.StreamConfig{
//	    Channels:   2,
//	    SampleRate: 48000,
//	}
//
//	if errors.Is(err, audio.ErrStreamConfigNotSupported) {
//	    // fall back to the device's default config
//	}
package audio
