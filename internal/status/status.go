// Package status provides a thread-safe status tracker for the scanner
// daemon. It is designed to be read by HTTP handlers while the scan loop
// writes to it.
package status

import (
	"sync"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// Config contains daemon configuration for display.
type Config struct {
	Device      string
	Baud        int
	Format      string
	PollMs      int64
	HoldoffMs   int64
	Strategy    string
	HeartbeatMs int64
	Broker      string // empty when the MQTT mirror is disabled
	HTTPAddr    string
}

// KeyState is the displayed state of one switch channel.
type KeyState struct {
	Pin     string
	Symbol  string
	Pressed bool
	Count   int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Keys          [scan.NumChannels]KeyState
	TotalPresses  int
	LastSymbol    string
	LastPin       string
	LastPressAt   time.Time
	SerialErrors  int
	GPIOErrors    int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time, layout, and
// config. Every key starts idle with a zero count.
func NewTracker(startTime time.Time, layout scan.Layout, cfg Config) *Tracker {
	t := &Tracker{}
	t.snap.StartTime = startTime
	t.snap.Config = cfg
	for i, ch := range layout {
		t.snap.Keys[i] = KeyState{Pin: ch.Pin, Symbol: string(ch.Symbol)}
	}
	return t
}

// Update sets the per-key levels and counts. Called from the scan loop on
// every tick with the raw sweep, so the page shows live levels even while
// emission is held off.
func (t *Tracker) Update(pressed []bool, counts scan.PressCounts) {
	t.mu.Lock()
	for i := range t.snap.Keys {
		if i < len(pressed) {
			t.snap.Keys[i].Pressed = pressed[i]
		}
		t.snap.Keys[i].Count = counts.PerKey[i]
	}
	t.snap.TotalPresses = counts.Total
	t.mu.Unlock()
}

// RecordPress notes the most recent emitted key.
func (t *Tracker) RecordPress(ev scan.Event) {
	t.mu.Lock()
	t.snap.LastSymbol = string(ev.Symbol)
	t.snap.LastPin = ev.Pin
	t.snap.LastPressAt = ev.Timestamp
	t.mu.Unlock()
}

// RecordSerialError counts a failed serial write.
func (t *Tracker) RecordSerialError() {
	t.mu.Lock()
	t.snap.SerialErrors++
	t.mu.Unlock()
}

// RecordGPIOError counts a failed sweep read.
func (t *Tracker) RecordGPIOError() {
	t.mu.Lock()
	t.snap.GPIOErrors++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
