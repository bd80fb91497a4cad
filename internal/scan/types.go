// Package scan contains the pure switch-scanning logic: the fixed channel
// table and press-edge detection. This package has NO external dependencies
// (no GPIO, serial, OS, or time.Sleep). Time is always injectable via
// time.Time parameters.
package scan

import "time"

// Level represents the logical level of one switch input.
type Level string

const (
	LevelIdle    Level = "IDLE"    // pull-up high, switch open
	LevelPressed Level = "PRESSED" // pulled low, switch closed
)

// Strategy selects how accepted press edges are debounced.
type Strategy string

const (
	// StrategyStall freezes the whole scanner for one hold-off after any
	// sweep that emitted, reproducing the original firmware's blocking
	// delay. Presses confined to the window are lost on every channel.
	StrategyStall Strategy = "stall"

	// StrategyPerKey holds off each channel independently. Other channels
	// keep scanning and emitting during a channel's hold-off.
	StrategyPerKey Strategy = "per-key"
)

// Event represents one accepted press edge to be emitted.
type Event struct {
	Timestamp time.Time
	Index     int    // position in the layout table
	Pin       string // board label of the input pin, e.g. "D0"
	Symbol    byte   // the byte sent over the wire
}

// Sample is one sweep of logical levels, index-parallel to the layout.
type Sample struct {
	Pressed []bool // true = pressed (already inverted from raw GPIO)
	Time    time.Time
}

// PressCounts tracks accepted press edges since startup.
// A plain value type — copies are independent snapshots.
type PressCounts struct {
	Total  int
	PerKey [NumChannels]int // indexed by layout position
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    PressCounts
}

// LevelFor converts a logical pressed flag to a Level.
func LevelFor(pressed bool) Level {
	if pressed {
		return LevelPressed
	}
	return LevelIdle
}
