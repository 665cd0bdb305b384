//go:build portaudio

// ABOUTME: PortAudio-based engine implementation
// ABOUTME: Feeds one-shot buffers through a ring buffer into a PortAudio stream
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudio is an alternative Engine built on the PortAudio library.
// Select it with -tags portaudio.
type PortAudio struct{}

// NewPortAudio creates the PortAudio-backed engine.
func NewPortAudio() Engine {
	return &PortAudio{}
}

// Available probes for a default output device.
func (*PortAudio) Available() bool {
	if err := portaudio.Initialize(); err != nil {
		return false
	}
	defer portaudio.Terminate()

	_, err := portaudio.DefaultOutputDevice()
	return err == nil
}

// NewContext allocates a rendering context. The PortAudio stream itself is
// opened lazily on the first Start, once the buffer format is known.
func (*PortAudio) NewContext() (Context, error) {
	return &paContext{running: true}, nil
}

type paContext struct {
	mu        sync.Mutex
	running   bool
	closed    bool
	intervals []*interval

	stream      *portaudio.Stream
	ring        *ringBuffer
	sampleRate  int
	channels    int
	initialized bool

	dest paDestination
}

// paDestination is the opaque output sink of a PortAudio context.
type paDestination struct{}

func (c *paContext) CreateBuffer(channels, frames, sampleRate int) (PCMBuffer, error) {
	return newPCMBuffer(channels, frames, sampleRate)
}

func (c *paContext) CreateSource() (SourceNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("context is closed")
	}
	return &paSource{ctx: c}, nil
}

func (c *paContext) Destination() Node {
	return c.dest
}

func (c *paContext) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	if !c.running && c.stream != nil {
		if err := c.stream.Start(); err != nil {
			log.Printf("Warning: portaudio stream start failed: %v", err)
		}
	}
	c.running = true
	return nil
}

func (c *paContext) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	if c.running && c.stream != nil {
		if err := c.stream.Stop(); err != nil {
			log.Printf("Warning: portaudio stream stop failed: %v", err)
		}
	}
	c.running = false
	return nil
}

func (c *paContext) isRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && !c.closed
}

func (c *paContext) SetInterval(fn func(), period time.Duration) (CancelFunc, error) {
	if period <= 0 {
		return nil, fmt.Errorf("invalid interval period: %v", period)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("context is closed")
	}
	iv := startInterval(fn, period, c.isRunning)
	c.intervals = append(c.intervals, iv)
	c.mu.Unlock()

	return iv.cancel, nil
}

func (c *paContext) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.running = false
	intervals := c.intervals
	c.intervals = nil
	stream := c.stream
	c.stream = nil
	initialized := c.initialized
	c.initialized = false
	c.mu.Unlock()

	for _, iv := range intervals {
		iv.cancel()
	}

	if stream != nil {
		if err := stream.Stop(); err != nil {
			log.Printf("Warning: portaudio stream stop failed: %v", err)
		}
		if err := stream.Close(); err != nil {
			log.Printf("Warning: portaudio stream close failed: %v", err)
		}
	}
	if initialized {
		if err := portaudio.Terminate(); err != nil {
			return fmt.Errorf("failed to terminate portaudio: %w", err)
		}
	}
	return nil
}

// ensureStream opens the PortAudio output stream on first use. Must be
// called without c.mu held.
func (c *paContext) ensureStream(sampleRate, channels int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("context is closed")
	}
	if c.stream != nil {
		if c.sampleRate != sampleRate || c.channels != channels {
			log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) ignored; stream already open",
				c.sampleRate, c.channels, sampleRate, channels)
		}
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	c.initialized = true

	// Half a second of queueing room between ticks and the device.
	c.ring = newRingBuffer(sampleRate * channels / 2)

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), 0, func(out []float32) {
		c.ring.read(out)
	})
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	c.stream = stream
	c.sampleRate = sampleRate
	c.channels = channels

	log.Printf("Audio engine initialized: %dHz, %d channels (portaudio)", sampleRate, channels)
	return nil
}

type paSource struct {
	ctx       *paContext
	buf       *pcmBuffer
	connected bool
}

func (s *paSource) SetBuffer(buf PCMBuffer) {
	if pb, ok := buf.(*pcmBuffer); ok {
		s.buf = pb
	}
}

func (s *paSource) Connect(dest Node) error {
	if _, ok := dest.(paDestination); !ok {
		return fmt.Errorf("cannot connect to foreign node %T", dest)
	}
	s.connected = true
	return nil
}

func (s *paSource) Start() error {
	if s.buf == nil {
		return fmt.Errorf("source has no buffer")
	}
	if !s.connected {
		return fmt.Errorf("source is not connected")
	}

	if err := s.ctx.ensureStream(s.buf.sampleRate, s.buf.channels); err != nil {
		return err
	}

	s.ctx.ring.write(s.buf.interleaved())
	return nil
}

// ringBuffer is a locked circular float32 buffer between the render ticks
// and the PortAudio callback.
type ringBuffer struct {
	mu       sync.Mutex
	buffer   []float32
	readPos  int
	writePos int
	count    int
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{buffer: make([]float32, capacity)}
}

// write adds samples, returning how many fit. Overflow is dropped rather
// than blocking the render tick.
func (rb *ringBuffer) write(samples []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for i := 0; i < len(samples) && rb.count < len(rb.buffer); i++ {
		rb.buffer[rb.writePos] = samples[i]
		rb.writePos = (rb.writePos + 1) % len(rb.buffer)
		rb.count++
		written++
	}
	return written
}

// read fills out from the buffer, zero-filling on underrun.
func (rb *ringBuffer) read(out []float32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	read := 0
	for i := 0; i < len(out) && rb.count > 0; i++ {
		out[i] = rb.buffer[rb.readPos]
		rb.readPos = (rb.readPos + 1) % len(rb.buffer)
		rb.count--
		read++
	}
	for i := read; i < len(out); i++ {
		out[i] = 0
	}
	return read
}
