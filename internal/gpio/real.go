//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads switch levels from actual hardware using the Linux GPIO
// character device. All lines belong to one bulk request, so a sweep is a
// single kernel round trip.
type RealReader struct {
	lines *gpiocdev.Lines
	vals  []int
}

// NewRealReader requests the given line offsets as inputs with internal
// pull-ups: an open switch reads high, a closed switch pulls its line low.
func NewRealReader(chip string, offsets []int) (*RealReader, error) {
	lines, err := gpiocdev.RequestLines(chip, offsets, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request %d lines on %s: %w", len(offsets), chip, err)
	}

	return &RealReader{
		lines: lines,
		vals:  make([]int, len(offsets)),
	}, nil
}

// Read returns the logical pressed state of every line, in request order.
// Inverts raw values: raw low (0) = pressed, raw high (1) = idle.
func (r *RealReader) Read() ([]bool, error) {
	if err := r.lines.Values(r.vals); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	pressed := make([]bool, len(r.vals))
	for i, v := range r.vals {
		pressed[i] = v == 0
	}
	return pressed, nil
}

// Close releases the line request. The kernel drops the pull-up bias with
// it, which is fine: the switches are passive and nothing else drives the
// lines.
func (r *RealReader) Close() error {
	if r.lines == nil {
		return nil
	}
	if err := r.lines.Close(); err != nil {
		return fmt.Errorf("close lines: %w", err)
	}
	return nil
}
