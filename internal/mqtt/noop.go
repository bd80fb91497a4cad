package mqtt

import (
	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// NoopPublisher discards everything. Used when no broker is configured,
// which is the default: the scanner is serial-first and MQTT is a mirror.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishKey discards the event.
func (*NoopPublisher) PublishKey(scan.Event) error {
	return nil
}

// PublishSystem discards the event.
func (*NoopPublisher) PublishSystem(SystemEvent) error {
	return nil
}

// Close does nothing.
func (*NoopPublisher) Close() error {
	return nil
}

// IsConnected always reports false: there is no broker.
func (*NoopPublisher) IsConnected() bool {
	return false
}
