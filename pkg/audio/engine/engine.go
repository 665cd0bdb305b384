// ABOUTME: Platform audio engine contract
// ABOUTME: Interfaces for contexts, PCM buffers, source nodes and intervals
package engine

import "time"

// Engine represents a platform audio API. An Engine hands out rendering
// Contexts; everything else happens through a Context.
type Engine interface {
	// Available reports whether the platform audio API is currently
	// reachable. This is a cheap snapshot, not a liveness guarantee.
	Available() bool

	// NewContext allocates a rendering context. Contexts start in the
	// running state.
	NewContext() (Context, error)
}

// Context is one platform rendering context. A context owns an output
// destination, creates PCM buffers and one-shot source nodes, and provides
// the periodic-callback primitive used to drive rendering.
type Context interface {
	// CreateBuffer allocates a planar PCM buffer.
	CreateBuffer(channels, frames, sampleRate int) (PCMBuffer, error)

	// CreateSource allocates a one-shot playback node.
	CreateSource() (SourceNode, error)

	// Destination returns the context's output sink.
	Destination() Node

	// Resume puts the context in the running state.
	Resume() error

	// Suspend pauses the context. Interval callbacks are skipped, not
	// queued, while suspended.
	Suspend() error

	// SetInterval registers fn to run every period while the context is
	// running. Callbacks never overlap. The returned CancelFunc
	// deregisters the interval and is safe to call more than once.
	SetInterval(fn func(), period time.Duration) (CancelFunc, error)

	// Close releases the context and stops any remaining intervals.
	Close() error
}

// PCMBuffer is a planar (channel-major) sample buffer.
type PCMBuffer interface {
	Channels() int
	Frames() int
	SampleRate() int

	// ChannelData returns the mutable sample slice for one channel.
	ChannelData(channel int) ([]float32, error)
}

// SourceNode plays one buffer exactly once. Nodes are fire-and-forget: the
// engine reclaims them after playback finishes.
type SourceNode interface {
	SetBuffer(PCMBuffer)
	Connect(Node) error

	// Start schedules playback with zero delay.
	Start() error
}

// Node is an opaque handle in the engine's processing graph.
type Node interface{}

// CancelFunc deregisters a periodic callback.
type CancelFunc func()
