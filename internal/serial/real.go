package serial

import (
	"fmt"

	tarm "github.com/tarm/serial"
)

// PortEmitter emits over a real serial port.
type PortEmitter struct {
	*WriterEmitter
	port *tarm.Port
}

// NewPortEmitter opens the serial device at the given baud rate. The
// consumer side is expected to match the baud; there is no negotiation.
func NewPortEmitter(device string, baud int, format Format) (*PortEmitter, error) {
	port, err := tarm.OpenPort(&tarm.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return &PortEmitter{
		WriterEmitter: NewWriterEmitter(port, format),
		port:          port,
	}, nil
}

// Close closes the underlying port.
func (e *PortEmitter) Close() error {
	if err := e.port.Close(); err != nil {
		return fmt.Errorf("close port: %w", err)
	}
	return nil
}
