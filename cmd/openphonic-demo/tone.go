// ABOUTME: Sine tone generator for the demo
// ABOUTME: Fills interleaved f32 buffers with an adjustable-frequency tone
package main

import (
	"math"
	"sync/atomic"

	"github.com/openphonic/openphonic-go/pkg/audio"
)

// toneGenerator produces a sine wave at an adjustable frequency. Fill runs
// on the render interval, so the frequency crosses goroutines atomically;
// the phase is only ever touched from Fill.
type toneGenerator struct {
	sampleRate int
	channels   int
	freqBits   atomic.Uint64
	phase      float64
	ticks      atomic.Int64
}

func newToneGenerator(sampleRate, channels int, freq float64) *toneGenerator {
	g := &toneGenerator{sampleRate: sampleRate, channels: channels}
	g.SetFrequency(freq)
	return g
}

// SetFrequency changes the tone, clamped to an audible range.
func (g *toneGenerator) SetFrequency(freq float64) {
	if freq < 20 {
		freq = 20
	}
	if freq > 20000 {
		freq = 20000
	}
	g.freqBits.Store(math.Float64bits(freq))
}

// Frequency returns the current tone frequency.
func (g *toneGenerator) Frequency() float64 {
	return math.Float64frombits(g.freqBits.Load())
}

// Ticks returns how many fill calls have run.
func (g *toneGenerator) Ticks() int64 {
	return g.ticks.Load()
}

// Fill is the stream's data callback.
func (g *toneGenerator) Fill(d *audio.Data) {
	g.ticks.Add(1)

	freq := g.Frequency()
	step := 2 * math.Pi * freq / float64(g.sampleRate)

	samples := d.Samples()
	frames := len(samples) / g.channels
	for f := 0; f < frames; f++ {
		v := float32(math.Sin(g.phase) * 0.5)
		for c := 0; c < g.channels; c++ {
			samples[f*g.channels+c] = v
		}
		g.phase += step
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	}
}
