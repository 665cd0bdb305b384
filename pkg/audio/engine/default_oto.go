//go:build !portaudio

// ABOUTME: Default engine selection (oto build)
// ABOUTME: Picks the oto engine unless the portaudio tag is set
package engine

// Default returns the engine compiled into this build.
func Default() Engine {
	return NewOto()
}
