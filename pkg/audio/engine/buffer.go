// ABOUTME: Planar PCM buffer shared by engine implementations
// ABOUTME: Channel-major float32 storage with interleave helper
package engine

import "fmt"

// pcmBuffer is the planar buffer used by the real engines. Channel data is
// stored channel-major: one contiguous slice per channel.
type pcmBuffer struct {
	channels   int
	frames     int
	sampleRate int
	data       [][]float32
}

func newPCMBuffer(channels, frames, sampleRate int) (*pcmBuffer, error) {
	if channels <= 0 || frames <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions: channels=%d frames=%d rate=%d",
			channels, frames, sampleRate)
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &pcmBuffer{
		channels:   channels,
		frames:     frames,
		sampleRate: sampleRate,
		data:       data,
	}, nil
}

func (b *pcmBuffer) Channels() int   { return b.channels }
func (b *pcmBuffer) Frames() int     { return b.frames }
func (b *pcmBuffer) SampleRate() int { return b.sampleRate }

func (b *pcmBuffer) ChannelData(channel int) ([]float32, error) {
	if channel < 0 || channel >= b.channels {
		return nil, fmt.Errorf("channel %d out of range [0, %d)", channel, b.channels)
	}
	return b.data[channel], nil
}

// interleaved flattens the planar data back to frame-major order:
// out[f*channels+c] = data[c][f].
func (b *pcmBuffer) interleaved() []float32 {
	out := make([]float32, b.channels*b.frames)
	for c := 0; c < b.channels; c++ {
		for f := 0; f < b.frames; f++ {
			out[f*b.channels+c] = b.data[c][f]
		}
	}
	return out
}
