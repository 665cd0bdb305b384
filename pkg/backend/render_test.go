// ABOUTME: Tests for the render loop
// ABOUTME: Deinterleave correctness, tick rendering and failure routing
package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/openphonic/openphonic-go/pkg/audio"
	"github.com/openphonic/openphonic-go/pkg/audio/engine/enginetest"
	"github.com/openphonic/openphonic-go/pkg/host"
)

// buildTestStream wires a stream over a fake engine and returns the fake
// context driving it.
func buildTestStream(t *testing.T, data host.DataCallback, errcb host.ErrorCallback) (*Stream, *enginetest.FakeContext) {
	t.Helper()

	fake := enginetest.NewFake()
	h := NewHost(Config{Engine: fake})
	dev, ok := h.DefaultOutputDevice()
	if !ok {
		t.Fatal("expected a default output device")
	}

	stream, err := dev.BuildOutputStream(audio.StreamConfig{Channels: 2, SampleRate: 48000},
		audio.F32, data, errcb)
	if err != nil {
		t.Fatalf("BuildOutputStream failed: %v", err)
	}

	return stream.(*Stream), fake.LastContext()
}

func TestDeinterleave(t *testing.T) {
	fake := enginetest.NewFake()
	ctx, err := fake.NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	const channels, frames = 2, 4
	scratch := make([]float32, channels*frames)
	for i := range scratch {
		scratch[i] = float32(i)
	}

	buf, err := ctx.CreateBuffer(channels, frames, 48000)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if err := deinterleave(scratch, channels, buf); err != nil {
		t.Fatalf("deinterleave failed: %v", err)
	}

	for c := 0; c < channels; c++ {
		data, err := buf.ChannelData(c)
		if err != nil {
			t.Fatalf("ChannelData(%d) failed: %v", c, err)
		}
		for f := 0; f < frames; f++ {
			want := scratch[f*channels+c]
			if data[f] != want {
				t.Errorf("channel[%d][%d]: expected %f, got %f", c, f, want, data[f])
			}
		}
	}
}

func TestRenderTickEndToEnd(t *testing.T) {
	stream, ctx := buildTestStream(t, func(d *audio.Data) {
		if d.SampleFormat() != audio.F32 {
			t.Errorf("expected f32 data view, got %v", d.SampleFormat())
		}
		samples := d.Samples()
		for i := range samples {
			samples[i] = 1.0
		}
	}, nil)
	defer stream.Close()

	ctx.Tick()

	bufs := ctx.StartedBuffers()
	if len(bufs) != 1 {
		t.Fatalf("expected one started buffer, got %d", len(bufs))
	}

	buf := bufs[0]
	// 10 ms of 48kHz audio: 480 frames per channel.
	if buf.Frames() != 480 {
		t.Errorf("expected 480 frames, got %d", buf.Frames())
	}
	for c := 0; c < buf.Channels(); c++ {
		data, err := buf.ChannelData(c)
		if err != nil {
			t.Fatalf("ChannelData(%d) failed: %v", c, err)
		}
		for f, v := range data {
			if v != 1.0 {
				t.Fatalf("channel[%d][%d]: expected 1.0, got %f", c, f, v)
			}
		}
	}
}

func TestRenderScratchIsZeroedEachTick(t *testing.T) {
	var sawDirty bool
	stream, ctx := buildTestStream(t, func(d *audio.Data) {
		samples := d.Samples()
		for _, v := range samples {
			if v != 0 {
				sawDirty = true
			}
		}
		for i := range samples {
			samples[i] = 0.5
		}
	}, nil)
	defer stream.Close()

	ctx.Tick()
	ctx.Tick()

	if sawDirty {
		t.Error("scratch buffer must be zeroed before every callback")
	}
}

func TestRenderTickBufferSizeTracksPeriod(t *testing.T) {
	fake := enginetest.NewFake()
	h := NewHost(Config{Engine: fake, TickPeriod: 20 * time.Millisecond})
	dev, _ := h.DefaultOutputDevice()

	var slots int
	stream, err := dev.BuildOutputStream(audio.StreamConfig{}, audio.F32, func(d *audio.Data) {
		slots = d.Len()
	}, nil)
	if err != nil {
		t.Fatalf("BuildOutputStream failed: %v", err)
	}
	defer stream.Close()

	fake.LastContext().Tick()

	// 20 ms at 48kHz stereo: 960 frames, 1920 interleaved slots.
	if slots != 1920 {
		t.Errorf("expected 1920 slots, got %d", slots)
	}
}

func TestRenderFailureRoutedToErrorCallback(t *testing.T) {
	var got []error
	stream, ctx := buildTestStream(t, func(d *audio.Data) {
		for i := range d.Samples() {
			d.Samples()[i] = 1.0
		}
	}, func(err error) {
		got = append(got, err)
	})
	defer stream.Close()

	cause := errors.New("buffer allocation refused")
	ctx.CreateBufferErr = cause
	ctx.Tick()

	if len(got) != 1 {
		t.Fatalf("expected one routed error, got %d", len(got))
	}
	if !errors.Is(got[0], cause) {
		t.Errorf("expected routed error to wrap the cause, got %v", got[0])
	}
	if len(ctx.StartedBuffers()) != 0 {
		t.Error("failed tick must not start playback")
	}

	// The failure is per-tick: the next tick renders normally.
	ctx.Tick()
	if len(ctx.StartedBuffers()) != 1 {
		t.Error("rendering must continue after a failed tick")
	}
	if len(got) != 1 {
		t.Errorf("expected no further errors, got %d", len(got))
	}
}

func TestRenderStartFailureSkipsTick(t *testing.T) {
	var got []error
	stream, ctx := buildTestStream(t, func(d *audio.Data) {}, func(err error) {
		got = append(got, err)
	})
	defer stream.Close()

	ctx.StartErr = errors.New("node start refused")
	ctx.Tick()

	if len(got) != 1 {
		t.Fatalf("expected one routed error, got %d", len(got))
	}
	if len(ctx.StartedBuffers()) != 0 {
		t.Error("failed start must not count as playback")
	}
}
