// Package gpio provides switch input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the logical levels of all switch inputs in one sweep.
type Reader interface {
	// Read returns one pressed flag per requested line, in request order.
	// The raw values are inverted: lines idle high under pull-up, so raw
	// low = pressed.
	Read() ([]bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device on a Raspberry Pi up to model 4.
// The Pi 5 exposes the header lines on gpiochip4 instead.
const DefaultChip = "gpiochip0"
