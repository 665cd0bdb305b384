// ABOUTME: Platform audio engine package
// ABOUTME: Engine contract plus oto and PortAudio implementations
// Package engine abstracts the platform audio API that backends render
// into: rendering contexts, planar PCM buffers, one-shot source nodes and
// the periodic-callback primitive.
//
// Two implementations ship with the library: oto (the default) and
// PortAudio (build with -tags portaudio). Tests use the in-memory fake in
// the enginetest subpackage.
//
// Example:
//
//	eng := engine.Default()
//	ctx, err := eng.NewContext()
//	cancel, err := ctx.SetInterval(render, 10*time.Millisecond)
package engine
