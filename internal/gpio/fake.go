package gpio

import "errors"

// FakeReader is a test double that returns scripted sweeps.
type FakeReader struct {
	// Samples contains scripted sweeps to return. Each call to Read()
	// consumes the next one.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample is one scripted sweep of logical levels, already in logical form:
// true = pressed.
type Sample []bool

// Idle returns a sweep of n channels with every switch open.
func Idle(n int) Sample {
	return make(Sample, n)
}

// Pressed returns a sweep of n channels with the listed positions closed.
func Pressed(n int, down ...int) Sample {
	s := make(Sample, n)
	for _, i := range down {
		s[i] = true
	}
	return s
}

// NewFakeReader creates a FakeReader with the given sweeps.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sweep.
// If samples are exhausted, returns the last sweep repeatedly.
// The result is a copy — callers may keep or modify it.
func (f *FakeReader) Read() ([]bool, error) {
	if f.ReadError != nil {
		return nil, f.ReadError
	}

	if len(f.Samples) == 0 {
		return nil, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	out := make([]bool, len(sample))
	copy(out, sample)
	return out, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
