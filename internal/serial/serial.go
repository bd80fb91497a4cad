// Package serial emits scanner output over the serial link, with
// abstraction for testing. The real implementation drives a serial port;
// any io.Writer can stand in for one.
package serial

import (
	"fmt"
	"io"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// Format selects the wire format for key emissions.
type Format string

const (
	// FormatRaw writes each press as its single symbol byte — no
	// delimiter, no framing. The device's native protocol.
	FormatRaw Format = "raw"

	// FormatVerbose writes one "Key pressed: x" line per press, CRLF
	// terminated. Kept for consumers that still parse the line protocol.
	FormatVerbose Format = "verbose"
)

// Emitter sends scanner output down the serial link.
type Emitter interface {
	// Announce writes the one-time readiness line. Human-readable only;
	// consumers must not parse it.
	Announce(msg string) error

	// EmitKey writes one press event. On failure the byte is simply lost:
	// no retry, no buffering.
	EmitKey(ev scan.Event) error

	// Close releases the port.
	Close() error
}

// WriterEmitter emits to any io.Writer. It carries the emission logic
// shared by the real port emitter, the stdout mode, and tests.
type WriterEmitter struct {
	w      io.Writer
	format Format
}

// NewWriterEmitter creates an emitter over w using the given format.
func NewWriterEmitter(w io.Writer, format Format) *WriterEmitter {
	return &WriterEmitter{w: w, format: format}
}

// Announce writes the readiness line, CRLF terminated in either format.
func (e *WriterEmitter) Announce(msg string) error {
	if _, err := fmt.Fprintf(e.w, "%s\r\n", msg); err != nil {
		return fmt.Errorf("write readiness line: %w", err)
	}
	return nil
}

// EmitKey writes one press event in the configured format.
func (e *WriterEmitter) EmitKey(ev scan.Event) error {
	var err error
	switch e.format {
	case FormatVerbose:
		_, err = fmt.Fprintf(e.w, "Key pressed: %c\r\n", ev.Symbol)
	default:
		_, err = e.w.Write([]byte{ev.Symbol})
	}
	if err != nil {
		return fmt.Errorf("write key %q: %w", ev.Symbol, err)
	}
	return nil
}

// Close is a no-op: the emitter does not own the writer.
func (e *WriterEmitter) Close() error {
	return nil
}
