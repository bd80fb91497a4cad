package scan

import "time"

// Scanner owns the per-channel scan state and detects press edges. It is the
// single instance of the mutable channel-table state: created once at startup
// and driven only by the scanning goroutine, so it needs no locking.
type Scanner struct {
	layout   Layout
	strategy Strategy
	holdOff  time.Duration

	prev       []bool      // previous logical level per channel; false = idle
	stallUntil time.Time   // StrategyStall: sweeps before this instant are skipped
	lastEdge   []time.Time // StrategyPerKey: last accepted edge per channel

	counts        PressCounts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewScanner creates a scanner over the given layout. Every channel's
// previous level starts at idle, so a switch already held at power-on
// produces an edge on the first processed sweep. The startTime is used for
// calculating uptime in heartbeat events.
func NewScanner(layout Layout, strategy Strategy, holdOff time.Duration, startTime time.Time) *Scanner {
	return &Scanner{
		layout:        layout,
		strategy:      strategy,
		holdOff:       holdOff,
		prev:          make([]bool, len(layout)),
		lastEdge:      make([]time.Time, len(layout)),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes one sweep and returns the press events it produced, in table
// order. sample.Pressed must be index-parallel to the layout.
//
// For every processed sweep the previous level of every channel is updated
// unconditionally, edge or no edge. Under StrategyStall a sweep inside the
// hold-off window is skipped before anything is observed: no events, no
// state updates — presses confined to the window are lost, exactly as on
// the original hardware, where the delay stalled all scanning.
func (s *Scanner) Process(sample Sample) []Event {
	if s.strategy == StrategyStall && sample.Time.Before(s.stallUntil) {
		return nil
	}

	var events []Event
	for i, ch := range s.layout {
		pressed := sample.Pressed[i]
		if pressed && !s.prev[i] && s.acceptEdge(i, sample.Time) {
			events = append(events, Event{
				Timestamp: sample.Time,
				Index:     i,
				Pin:       ch.Pin,
				Symbol:    ch.Symbol,
			})
			s.lastEdge[i] = sample.Time
			s.counts.Total++
			s.counts.PerKey[i]++
		}
		s.prev[i] = pressed
	}

	if s.strategy == StrategyStall && len(events) > 0 {
		s.stallUntil = sample.Time.Add(s.holdOff)
	}

	return events
}

// acceptEdge applies the per-key hold-off. Under StrategyStall every edge in
// a processed sweep is accepted — the hold-off gates the sweep cadence
// instead. A suppressed edge does not refresh the channel's timestamp.
func (s *Scanner) acceptEdge(i int, now time.Time) bool {
	if s.strategy != StrategyPerKey {
		return true
	}
	last := s.lastEdge[i]
	return last.IsZero() || now.Sub(last) >= s.holdOff
}

// Counts returns a copy of the accepted press counters.
func (s *Scanner) Counts() PressCounts {
	return s.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (s *Scanner) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(s.lastHeartbeat) < interval {
		return nil
	}

	s.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(s.startTime),
		Counts:    s.counts,
	}
}
