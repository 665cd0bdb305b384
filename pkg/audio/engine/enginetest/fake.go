// ABOUTME: In-memory fake engine for tests
// ABOUTME: Records buffers and sources, drives intervals manually via Tick
package enginetest

import (
	"fmt"
	"sync"
	"time"

	"github.com/openphonic/openphonic-go/pkg/audio/engine"
)

// Fake is an in-memory engine.Engine. It records everything created
// through it and lets tests drive interval callbacks deterministically.
type Fake struct {
	mu sync.Mutex

	// Unavailable makes Available report false.
	Unavailable bool

	// NewContextErr, when set, fails the next NewContext call.
	NewContextErr error

	contexts []*FakeContext
}

// NewFake creates an available fake engine.
func NewFake() *Fake {
	return &Fake{}
}

// Available reports the configured availability.
func (f *Fake) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.Unavailable
}

// NewContext allocates a fake context, running, with no intervals.
func (f *Fake) NewContext() (engine.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.NewContextErr != nil {
		err := f.NewContextErr
		f.NewContextErr = nil
		return nil, err
	}

	ctx := &FakeContext{running: true}
	f.contexts = append(f.contexts, ctx)
	return ctx, nil
}

// Contexts returns every context created so far.
func (f *Fake) Contexts() []*FakeContext {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeContext(nil), f.contexts...)
}

// LastContext returns the most recently created context.
func (f *Fake) LastContext() *FakeContext {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.contexts) == 0 {
		return nil
	}
	return f.contexts[len(f.contexts)-1]
}

// FakeContext is an in-memory engine.Context.
type FakeContext struct {
	mu        sync.Mutex
	running   bool
	closed    bool
	buffers   []*FakeBuffer
	sources   []*FakeSource
	intervals []*fakeInterval

	// Error injection. Each fires once, then clears.
	CreateBufferErr error
	CreateSourceErr error
	StartErr        error
}

// fakeDestination is the context's output sink.
type fakeDestination struct{ ctx *FakeContext }

type fakeInterval struct {
	fn        func()
	period    time.Duration
	cancelled bool
}

// CreateBuffer allocates a planar fake buffer.
func (c *FakeContext) CreateBuffer(channels, frames, sampleRate int) (engine.PCMBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.CreateBufferErr != nil {
		err := c.CreateBufferErr
		c.CreateBufferErr = nil
		return nil, err
	}
	if channels <= 0 || frames <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions: channels=%d frames=%d rate=%d",
			channels, frames, sampleRate)
	}

	data := make([][]float32, channels)
	for i := range data {
		data[i] = make([]float32, frames)
	}
	buf := &FakeBuffer{channels: channels, frames: frames, sampleRate: sampleRate, Data: data}
	c.buffers = append(c.buffers, buf)
	return buf, nil
}

// CreateSource allocates a fake source node.
func (c *FakeContext) CreateSource() (engine.SourceNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.CreateSourceErr != nil {
		err := c.CreateSourceErr
		c.CreateSourceErr = nil
		return nil, err
	}

	src := &FakeSource{ctx: c}
	c.sources = append(c.sources, src)
	return src, nil
}

// Destination returns the context's output sink.
func (c *FakeContext) Destination() engine.Node {
	return fakeDestination{ctx: c}
}

// Resume marks the context running.
func (c *FakeContext) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	c.running = true
	return nil
}

// Suspend marks the context suspended.
func (c *FakeContext) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	c.running = false
	return nil
}

// Running reports the context's running state.
func (c *FakeContext) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Closed reports whether Close has been called.
func (c *FakeContext) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SetInterval registers fn; ticks are driven manually with Tick.
func (c *FakeContext) SetInterval(fn func(), period time.Duration) (engine.CancelFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("context is closed")
	}
	iv := &fakeInterval{fn: fn, period: period}
	c.intervals = append(c.intervals, iv)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		iv.cancelled = true
	}, nil
}

// Close marks the context closed and cancels its intervals.
func (c *FakeContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.running = false
	for _, iv := range c.intervals {
		iv.cancelled = true
	}
	return nil
}

// Tick fires every active interval once, matching the real engines'
// semantics: suspended or closed contexts skip their callbacks.
func (c *FakeContext) Tick() {
	c.mu.Lock()
	if !c.running || c.closed {
		c.mu.Unlock()
		return
	}
	var fns []func()
	for _, iv := range c.intervals {
		if !iv.cancelled {
			fns = append(fns, iv.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ActiveIntervals returns how many intervals remain uncancelled.
func (c *FakeContext) ActiveIntervals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, iv := range c.intervals {
		if !iv.cancelled {
			n++
		}
	}
	return n
}

// Sources returns every source created on this context.
func (c *FakeContext) Sources() []*FakeSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*FakeSource(nil), c.sources...)
}

// StartedBuffers returns, in creation order, the buffer behind each source
// whose Start was called.
func (c *FakeContext) StartedBuffers() []*FakeBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var bufs []*FakeBuffer
	for _, src := range c.sources {
		if src.started && src.buf != nil {
			bufs = append(bufs, src.buf)
		}
	}
	return bufs
}

// FakeBuffer is a planar in-memory buffer with exported channel data.
type FakeBuffer struct {
	channels   int
	frames     int
	sampleRate int
	Data       [][]float32
}

func (b *FakeBuffer) Channels() int   { return b.channels }
func (b *FakeBuffer) Frames() int     { return b.frames }
func (b *FakeBuffer) SampleRate() int { return b.sampleRate }

// ChannelData returns the mutable slice for one channel.
func (b *FakeBuffer) ChannelData(channel int) ([]float32, error) {
	if channel < 0 || channel >= b.channels {
		return nil, fmt.Errorf("channel %d out of range [0, %d)", channel, b.channels)
	}
	return b.Data[channel], nil
}

// FakeSource records SetBuffer/Connect/Start calls.
type FakeSource struct {
	ctx       *FakeContext
	buf       *FakeBuffer
	connected bool
	started   bool
}

// SetBuffer attaches a buffer to the source.
func (s *FakeSource) SetBuffer(buf engine.PCMBuffer) {
	if fb, ok := buf.(*FakeBuffer); ok {
		s.buf = fb
	}
}

// Connect records the destination, rejecting nodes from other contexts.
func (s *FakeSource) Connect(dest engine.Node) error {
	fd, ok := dest.(fakeDestination)
	if !ok || fd.ctx != s.ctx {
		return fmt.Errorf("cannot connect to foreign node %T", dest)
	}
	s.connected = true
	return nil
}

// Start marks the source played, honoring injected StartErr.
func (s *FakeSource) Start() error {
	s.ctx.mu.Lock()
	if s.ctx.StartErr != nil {
		err := s.ctx.StartErr
		s.ctx.StartErr = nil
		s.ctx.mu.Unlock()
		return err
	}
	s.ctx.mu.Unlock()

	if s.buf == nil {
		return fmt.Errorf("source has no buffer")
	}
	if !s.connected {
		return fmt.Errorf("source is not connected")
	}
	s.started = true
	return nil
}

// Started reports whether Start succeeded.
func (s *FakeSource) Started() bool {
	return s.started
}
