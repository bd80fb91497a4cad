package serial

import (
	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// FakeEmitter records everything emitted, for test assertions.
type FakeEmitter struct {
	// Announcements holds readiness lines in emission order.
	Announcements []string

	// Events holds every key event emitted.
	Events []scan.Event

	// Bytes holds the symbol bytes in emission order, which is what a
	// raw-format consumer would have received.
	Bytes []byte

	// AnnounceError, if set, is returned by Announce without recording.
	AnnounceError error

	// EmitError, if set, is returned by EmitKey without recording.
	EmitError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeEmitter creates an empty fake.
func NewFakeEmitter() *FakeEmitter {
	return &FakeEmitter{}
}

// Announce records the readiness line.
func (f *FakeEmitter) Announce(msg string) error {
	if f.AnnounceError != nil {
		return f.AnnounceError
	}
	f.Announcements = append(f.Announcements, msg)
	return nil
}

// EmitKey records the event and its symbol byte.
func (f *FakeEmitter) EmitKey(ev scan.Event) error {
	if f.EmitError != nil {
		return f.EmitError
	}
	f.Events = append(f.Events, ev)
	f.Bytes = append(f.Bytes, ev.Symbol)
	return nil
}

// Close marks the emitter closed.
func (f *FakeEmitter) Close() error {
	f.Closed = true
	return nil
}
