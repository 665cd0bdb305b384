// ABOUTME: Render loop for output streams
// ABOUTME: Pulls interleaved samples per tick, deinterleaves and plays them
package backend

import (
	"fmt"
	"log"
	"time"

	"github.com/openphonic/openphonic-go/pkg/audio"
	"github.com/openphonic/openphonic-go/pkg/audio/engine"
	"github.com/openphonic/openphonic-go/pkg/host"
)

// renderer is the per-stream render state: the reusable interleaved scratch
// buffer and the callbacks bound at stream construction. One tick renders
// one scratch buffer's worth of audio as a fire-and-forget source node.
type renderer struct {
	inner      *streamInner
	channels   int
	sampleRate int
	scratch    []float32
	data       host.DataCallback
	errcb      host.ErrorCallback
}

// newRenderer sizes the scratch buffer from the tick period: one period's
// worth of frames, interleaved across the stream's channels. The slot count
// is a multiple of the channel count by construction.
func newRenderer(inner *streamInner, cfg audio.SupportedStreamConfig, period time.Duration, data host.DataCallback, errcb host.ErrorCallback) *renderer {
	frames := int(int64(cfg.SampleRate) * int64(period) / int64(time.Second))
	if frames < 1 {
		frames = 1
	}

	return &renderer{
		inner:      inner,
		channels:   cfg.Channels,
		sampleRate: cfg.SampleRate,
		scratch:    make([]float32, frames*cfg.Channels),
		data:       data,
		errcb:      errcb,
	}
}

// tick runs one render pass. Engine failures are reported through the
// stream's error callback and the tick is skipped; the process never
// aborts and later ticks are unaffected.
func (r *renderer) tick() {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()

	if r.inner.closed {
		return
	}
	ctx := r.inner.ctx

	// The scratch buffer carries no state between ticks.
	for i := range r.scratch {
		r.scratch[i] = 0
	}
	r.data(audio.NewData(r.scratch, audio.F32))

	if len(r.scratch)%r.channels != 0 {
		r.fail("scratch buffer length is not a multiple of the channel count", nil)
		return
	}
	frames := len(r.scratch) / r.channels

	buf, err := ctx.CreateBuffer(r.channels, frames, r.sampleRate)
	if err != nil {
		r.fail("failed to create buffer", err)
		return
	}
	if err := deinterleave(r.scratch, r.channels, buf); err != nil {
		r.fail("failed to fill channel data", err)
		return
	}

	src, err := ctx.CreateSource()
	if err != nil {
		r.fail("failed to create buffer source", err)
		return
	}
	src.SetBuffer(buf)
	if err := src.Connect(ctx.Destination()); err != nil {
		r.fail("failed to connect source", err)
		return
	}
	if err := src.Start(); err != nil {
		r.fail("failed to start playback", err)
	}
}

// fail routes a tick failure to the stream's error callback, falling back
// to the log when no callback was registered.
func (r *renderer) fail(description string, cause error) {
	err := audio.NewBackendError(description, cause)
	if r.errcb != nil {
		r.errcb(err)
		return
	}
	log.Printf("Stream %s: render tick failed: %v", r.inner.id, err)
}

// deinterleave transposes the frame-major scratch buffer into the planar
// engine buffer: channel[c][f] = scratch[f*channels+c].
func deinterleave(scratch []float32, channels int, buf engine.PCMBuffer) error {
	frames := len(scratch) / channels
	for c := 0; c < channels; c++ {
		dst, err := buf.ChannelData(c)
		if err != nil {
			return err
		}
		if len(dst) < frames {
			return fmt.Errorf("channel %d holds %d frames, need %d", c, len(dst), frames)
		}
		for f := 0; f < frames; f++ {
			dst[f] = scratch[f*channels+c]
		}
	}
	return nil
}
