// ABOUTME: Oto-based engine implementation
// ABOUTME: Plays planar buffers as one-shot float32 PCM players via oto
package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows exactly one context per process, so every engine context
// shares a single process-wide oto.Context. The first buffer played fixes
// the process format; later format changes are logged and ignored, the same
// accommodation the rest of the ecosystem makes for oto.
var (
	otoMu         sync.Mutex
	otoShared     *oto.Context
	otoSampleRate int
	otoChannels   int
	otoRefs       int
)

func acquireOtoContext(sampleRate, channels int) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoShared == nil {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan

		otoShared = ctx
		otoSampleRate = sampleRate
		otoChannels = channels

		log.Printf("Audio engine initialized: %dHz, %d channels (oto)", sampleRate, channels)
	} else if otoSampleRate != sampleRate || otoChannels != channels {
		log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			otoSampleRate, otoChannels, sampleRate, channels)
	}

	otoRefs++
	if err := otoShared.Resume(); err != nil {
		log.Printf("Warning: oto resume failed: %v", err)
	}

	return otoShared, nil
}

func releaseOtoContext() {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoRefs == 0 {
		return
	}
	otoRefs--
	if otoRefs == 0 && otoShared != nil {
		if err := otoShared.Suspend(); err != nil {
			log.Printf("Warning: oto suspend failed: %v", err)
		}
	}
}

// Oto is the default Engine, backed by the oto library.
type Oto struct{}

// NewOto creates the oto-backed engine.
func NewOto() Engine {
	return &Oto{}
}

// Available reports whether oto can be used. Oto carries its own platform
// backends, so the engine is considered reachable; context creation is
// where real failures surface.
func (*Oto) Available() bool {
	return true
}

// NewContext allocates a rendering context. The context starts running.
func (*Oto) NewContext() (Context, error) {
	return &otoContext{running: true}, nil
}

type otoContext struct {
	mu        sync.Mutex
	running   bool
	closed    bool
	acquired  bool
	intervals []*interval
	dest      otoDestination
}

// otoDestination is the opaque output sink of an oto context.
type otoDestination struct{}

func (c *otoContext) CreateBuffer(channels, frames, sampleRate int) (PCMBuffer, error) {
	return newPCMBuffer(channels, frames, sampleRate)
}

func (c *otoContext) CreateSource() (SourceNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("context is closed")
	}
	return &otoSource{ctx: c}, nil
}

func (c *otoContext) Destination() Node {
	return c.dest
}

func (c *otoContext) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	c.running = true
	return nil
}

func (c *otoContext) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("context is closed")
	}
	c.running = false
	return nil
}

func (c *otoContext) isRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && !c.closed
}

func (c *otoContext) SetInterval(fn func(), period time.Duration) (CancelFunc, error) {
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

func (c *otoContext) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.running = false
	intervals := c.intervals
	c.intervals = nil
	acquired := c.acquired
	c.acquired = false
	c.mu.Unlock()

	for _, iv := range intervals {
		iv.cancel()
	}
	if acquired {
		releaseOtoContext()
	}
	return nil
}

// markAcquired records that this context holds a reference on the shared
// oto context. Returns false if a reference was already held.
func (c *otoContext) markAcquired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.acquired {
		return false
	}
	c.acquired = true
	return true
}

type otoSource struct {
	ctx       *otoContext
	buf       *pcmBuffer
	connected bool
}

func (s *otoSource) SetBuffer(buf PCMBuffer) {
	if pb, ok := buf.(*pcmBuffer); ok {
		s.buf = pb
	}
}

func (s *otoSource) Connect(dest Node) error {
	if _, ok := dest.(otoDestination); !ok {
		return fmt.Errorf("cannot connect to foreign node %T", dest)
	}
	s.connected = true
	return nil
}

// Start plays the buffer once on a throwaway oto player. The player is not
// retained; oto reclaims it after the reader drains.
func (s *otoSource) Start() error {
	if s.buf == nil {
		return fmt.Errorf("source has no buffer")
	}
	if !s.connected {
		return fmt.Errorf("source is not connected")
	}

	otoCtx, err := acquireOtoContext(s.buf.sampleRate, s.buf.channels)
	if err != nil {
		return err
	}
	if !s.ctx.markAcquired() {
		// The context already holds its reference; drop the extra one.
		releaseOtoContext()
	}

	pcm := s.buf.interleaved()
	raw := make([]byte, len(pcm)*4)
	for i, sample := range pcm {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(sample))
	}

	player := otoCtx.NewPlayer(bytes.NewReader(raw))
	player.Play()

	return nil
}
