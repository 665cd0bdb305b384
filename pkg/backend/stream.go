// ABOUTME: Stream lifecycle for the default backend
// ABOUTME: Refcounted shared context, play/pause and teardown on last close
package backend

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/openphonic/openphonic-go/pkg/audio"
	"github.com/openphonic/openphonic-go/pkg/audio/engine"
)

// streamInner is the state shared between stream handles and the render
// interval. The mutex is the exclusive-access gate on the context: every
// accessor (handle method or render tick) holds it only for the duration of
// one access.
type streamInner struct {
	mu     sync.Mutex
	id     uuid.UUID
	ctx    engine.Context
	cancel engine.CancelFunc
	refs   int
	closed bool
}

// Stream is one handle on a rendering stream. Handles may be cloned; the
// underlying context and render interval are torn down when the last handle
// is closed.
type Stream struct {
	inner     *streamInner
	closeOnce sync.Once
}

func newStream(ctx engine.Context) *Stream {
	return &Stream{
		inner: &streamInner{
			id:   uuid.New(),
			ctx:  ctx,
			refs: 1,
		},
	}
}

// ID identifies the underlying stream; clones share it.
func (s *Stream) ID() uuid.UUID {
	return s.inner.id
}

// Clone returns a second handle on the same stream.
func (s *Stream) Clone() *Stream {
	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()
	s.inner.refs++
	return &Stream{inner: s.inner}
}

// Play resumes the underlying context. Resume failures are logged and
// discarded; the call still reports success. Idempotent.
func (s *Stream) Play() error {
	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()

	if s.inner.closed {
		return audio.NewBackendError("stream is closed", nil)
	}
	if err := s.inner.ctx.Resume(); err != nil {
		log.Printf("Stream %s: resume failed: %v", s.inner.id, err)
	}
	return nil
}

// Pause suspends the underlying context. Suspend failures are logged and
// discarded; the call still reports success. Idempotent.
func (s *Stream) Pause() error {
	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()

	if s.inner.closed {
		return audio.NewBackendError("stream is closed", nil)
	}
	if err := s.inner.ctx.Suspend(); err != nil {
		log.Printf("Stream %s: suspend failed: %v", s.inner.id, err)
	}
	return nil
}

// Close releases this handle. When the last handle goes, the render
// interval is deregistered and the context released, so no further data
// callbacks fire. Closing the same handle twice is a no-op.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.inner.mu.Lock()
		s.inner.refs--
		last := s.inner.refs == 0
		if last {
			s.inner.closed = true
		}
		cancel := s.inner.cancel
		ctx := s.inner.ctx
		id := s.inner.id
		s.inner.mu.Unlock()

		if !last {
			return
		}

		// The interval must go first: cancellation waits for any
		// in-flight tick, which may be holding the inner mutex.
		if cancel != nil {
			cancel()
		}
		err = ctx.Close()
		log.Printf("Stream %s closed", id)
	})
	return err
}
