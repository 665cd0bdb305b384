// ABOUTME: Tests for core audio types
// ABOUTME: Tests sample formats, capability ranges and the Data view
package audio

import (
	"errors"
	"testing"
)

func TestSampleFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   SampleFormat
		expected string
	}{
		{"f32", F32, "f32"},
		{"i16", I16, "i16"},
		{"unknown", SampleFormat(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSampleFormatSize(t *testing.T) {
	if F32.SampleSize() != 4 {
		t.Errorf("expected f32 size 4, got %d", F32.SampleSize())
	}
	if I16.SampleSize() != 2 {
		t.Errorf("expected i16 size 2, got %d", I16.SampleSize())
	}
}

func TestRangeWithMaxSampleRate(t *testing.T) {
	r := SupportedStreamConfigRange{
		Channels:      2,
		MinSampleRate: 48000,
		MaxSampleRate: 48000,
		SampleFormat:  F32,
	}

	cfg := r.WithMaxSampleRate()
	if cfg.Channels != 2 || cfg.SampleRate != 48000 || cfg.SampleFormat != F32 {
		t.Errorf("unexpected resolved config: %+v", cfg)
	}
}

func TestRangeContains(t *testing.T) {
	r := SupportedStreamConfigRange{
		Channels:      2,
		MinSampleRate: 44100,
		MaxSampleRate: 48000,
		SampleFormat:  F32,
	}

	tests := []struct {
		name     string
		cfg      StreamConfig
		expected bool
	}{
		{"at min", StreamConfig{2, 44100}, true},
		{"at max", StreamConfig{2, 48000}, true},
		{"below min", StreamConfig{2, 22050}, false},
		{"above max", StreamConfig{2, 96000}, false},
		{"wrong channels", StreamConfig{1, 48000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.cfg); got != tt.expected {
				t.Errorf("Contains(%+v): expected %v, got %v", tt.cfg, tt.expected, got)
			}
		})
	}
}

func TestDataView(t *testing.T) {
	buf := make([]float32, 960)
	d := NewData(buf, F32)

	if d.Len() != 960 {
		t.Errorf("expected len 960, got %d", d.Len())
	}
	if d.SampleFormat() != F32 {
		t.Errorf("expected format f32, got %v", d.SampleFormat())
	}

	// Writes through Samples() land in the wrapped buffer.
	d.Samples()[5] = 0.25
	if buf[5] != 0.25 {
		t.Errorf("expected write-through, got %f", buf[5])
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("engine exploded")
	err := NewBackendError("create buffer failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected BackendError to unwrap to its cause")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatal("expected errors.As to find BackendError")
	}
	if be.Description != "create buffer failed" {
		t.Errorf("unexpected description: %q", be.Description)
	}

	bare := NewBackendError("unimplemented", nil)
	if bare.Error() != "backend error: unimplemented" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}
