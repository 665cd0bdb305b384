//go:build portaudio

// ABOUTME: Default engine selection (portaudio build)
// ABOUTME: Picks the PortAudio engine when built with -tags portaudio
package engine

// Default returns the engine compiled into this build.
func Default() Engine {
	return NewPortAudio()
}
