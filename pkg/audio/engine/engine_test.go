// ABOUTME: Tests for the engine package
// ABOUTME: Covers planar buffers, interval scheduling and oto context state
package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPCMBufferDimensions(t *testing.T) {
	buf, err := newPCMBuffer(2, 480, 48000)
	if err != nil {
		t.Fatalf("newPCMBuffer failed: %v", err)
	}

	if buf.Channels() != 2 || buf.Frames() != 480 || buf.SampleRate() != 48000 {
		t.Errorf("unexpected dimensions: %d/%d/%d", buf.Channels(), buf.Frames(), buf.SampleRate())
	}

	for c := 0; c < 2; c++ {
		data, err := buf.ChannelData(c)
		if err != nil {
			t.Fatalf("ChannelData(%d) failed: %v", c, err)
		}
		if len(data) != 480 {
			t.Errorf("channel %d: expected 480 frames, got %d", c, len(data))
		}
	}

	if _, err := buf.ChannelData(2); err == nil {
		t.Error("expected out-of-range channel to fail")
	}
	if _, err := buf.ChannelData(-1); err == nil {
		t.Error("expected negative channel to fail")
	}
}

func TestPCMBufferInvalidDimensions(t *testing.T) {
	tests := []struct {
		name                       string
		channels, frames, rate int
	}{
		{"zero channels", 0, 480, 48000},
		{"zero frames", 2, 0, 48000},
		{"zero rate", 2, 480, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newPCMBuffer(tt.channels, tt.frames, tt.rate); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPCMBufferInterleave(t *testing.T) {
	buf, err := newPCMBuffer(2, 3, 48000)
	if err != nil {
		t.Fatalf("newPCMBuffer failed: %v", err)
	}

	left, _ := buf.ChannelData(0)
	right, _ := buf.ChannelData(1)
	copy(left, []float32{1, 2, 3})
	copy(right, []float32{4, 5, 6})

	got := buf.interleaved()
	want := []float32{1, 4, 2, 5, 3, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestIntervalFiresAndCancels(t *testing.T) {
	var ticks atomic.Int64
	fired := make(chan struct{}, 16)

	iv := startInterval(func() {
		ticks.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	}, time.Millisecond, func() bool { return true })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("interval never fired")
	}

	iv.cancel()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("interval fired after cancel")
	}

	// Idempotent.
	iv.cancel()
}

func TestIntervalSkipsWhileSuspended(t *testing.T) {
	var ticks atomic.Int64
	iv := startInterval(func() { ticks.Add(1) }, time.Millisecond, func() bool { return false })
	defer iv.cancel()

	time.Sleep(20 * time.Millisecond)
	if n := ticks.Load(); n != 0 {
		t.Errorf("expected no ticks while suspended, got %d", n)
	}
}

func TestOtoContextStateTransitions(t *testing.T) {
	eng := NewOto()
	if !eng.Available() {
		t.Fatal("oto engine should report available")
	}

	ctx, err := eng.NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	oc := ctx.(*otoContext)
	if !oc.isRunning() {
		t.Error("context should start running")
	}

	if err := ctx.Suspend(); err != nil {
		t.Fatalf("Suspend failed: %v", err)
	}
	if oc.isRunning() {
		t.Error("context should be suspended")
	}

	if err := ctx.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if !oc.isRunning() {
		t.Error("context should be running again")
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if err := ctx.Resume(); err == nil {
		t.Error("Resume after Close should fail")
	}
	if _, err := ctx.SetInterval(func() {}, time.Millisecond); err == nil {
		t.Error("SetInterval after Close should fail")
	}
}

func TestOtoContextIntervalLifecycle(t *testing.T) {
	eng := NewOto()
	ctx, err := eng.NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	var ticks atomic.Int64
	cancel, err := ctx.SetInterval(func() { ticks.Add(1) }, time.Millisecond)
	if err != nil {
		t.Fatalf("SetInterval failed: %v", err)
	}
	if _, err := ctx.SetInterval(func() {}, 0); err == nil {
		t.Error("expected non-positive period to fail")
	}

	cancel()
	after := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("interval fired after cancel")
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestOtoSourcePreconditions(t *testing.T) {
	eng := NewOto()
	ctx, err := eng.NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer ctx.Close()

	src, err := ctx.CreateSource()
	if err != nil {
		t.Fatalf("CreateSource failed: %v", err)
	}

	// No buffer attached.
	if err := src.Start(); err == nil {
		t.Error("Start without buffer should fail")
	}

	buf, err := ctx.CreateBuffer(2, 16, 48000)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	src.SetBuffer(buf)

	// Not connected yet.
	if err := src.Start(); err == nil {
		t.Error("Start without connect should fail")
	}

	if err := src.Connect(struct{}{}); err == nil {
		t.Error("connecting to a foreign node should fail")
	}
	if err := src.Connect(ctx.Destination()); err != nil {
		t.Errorf("Connect failed: %v", err)
	}
}
