// ABOUTME: Interleaved sample buffer view passed to data callbacks
// ABOUTME: Wraps a scratch float slice tagged with its sample format
package audio

// Data is the view handed to a stream's data callback. It wraps an
// interleaved sample buffer (frame-major: all channels of frame 0, then all
// channels of frame 1, ...) tagged with its sample format.
//
// The underlying buffer is owned by the stream and reused between callback
// invocations; the callback must overwrite it and must not retain the slice
// after returning.
type Data struct {
	samples []float32
	format  SampleFormat
}

// NewData wraps an interleaved sample buffer.
func NewData(samples []float32, format SampleFormat) *Data {
	return &Data{samples: samples, format: format}
}

// Samples returns the interleaved sample buffer for the callback to fill.
func (d *Data) Samples() []float32 {
	return d.samples
}

// Len returns the total number of sample slots (frames x channels).
func (d *Data) Len() int {
	return len(d.samples)
}

// SampleFormat returns the format of the samples in the buffer.
func (d *Data) SampleFormat() SampleFormat {
	return d.format
}
