// Package mqtt provides MQTT publishing with abstraction for testing.
//
// The broker mirror is optional: the serial link stays the primary output
// and nothing here may block or fail the scan loop.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// Topic is the MQTT topic for key press events.
const Topic = "typewriter/scanner/keys"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "typewriter/scanner/system"

// Publisher publishes scanner events to MQTT.
type Publisher interface {
	// PublishKey sends a key press event to the broker.
	// Returns error if publishing fails (must not crash the process).
	PublishKey(ev scan.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string          // "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string          // "SIGTERM", "SIGINT" (shutdown only)
	Config     *SystemConfig   // startup only
	Heartbeat  *HeartbeatInfo  // heartbeat only
	RawPayload []byte          // pre-formatted JSON; if set, FormatSystemPayload returns it directly
	Retained   bool            // whether the broker should retain the message
}

// Payload is the MQTT message payload for key events.
type Payload struct {
	Key KeyPayload `json:"key"`
}

// KeyPayload carries one key press.
type KeyPayload struct {
	Timestamp string `json:"timestamp"`
	Symbol    string `json:"symbol"`
	Pin       string `json:"pin"`
	Index     int    `json:"index"`
}

// FormatKeyPayload creates the JSON payload for a key press event.
func FormatKeyPayload(ev scan.Event) ([]byte, error) {
	payload := Payload{
		Key: KeyPayload{
			Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
			Symbol:    string(ev.Symbol),
			Pin:       ev.Pin,
			Index:     ev.Index,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reason    string         `json:"reason,omitempty"`
	Config    *SystemConfig  `json:"config,omitempty"`
	Heartbeat *HeartbeatInfo `json:"heartbeat,omitempty"`
}

// SystemConfig reports the effective configuration in STARTUP events.
type SystemConfig struct {
	PollMs      int    `json:"poll_ms"`
	HoldoffMs   int64  `json:"holdoff_ms"`
	Strategy    string `json:"strategy"`
	Format      string `json:"format"`
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
}

// HeartbeatInfo carries uptime and press counters in HEARTBEAT events.
// PerKey maps symbol to count and omits keys never pressed.
type HeartbeatInfo struct {
	UptimeSeconds int64          `json:"uptime_seconds"`
	TotalPresses  int            `json:"total_presses"`
	PerKey        map[string]int `json:"per_key,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			Config:    event.Config,
			Heartbeat: event.Heartbeat,
		},
	}
	return json.Marshal(payload)
}

// HeartbeatFromCounts converts scanner counters into heartbeat payload form.
func HeartbeatFromCounts(uptime time.Duration, counts scan.PressCounts, layout scan.Layout) *HeartbeatInfo {
	info := &HeartbeatInfo{
		UptimeSeconds: int64(uptime.Seconds()),
		TotalPresses:  counts.Total,
	}
	for i, ch := range layout {
		if counts.PerKey[i] > 0 {
			if info.PerKey == nil {
				info.PerKey = make(map[string]int)
			}
			info.PerKey[string(ch.Symbol)] = counts.PerKey[i]
		}
	}
	return info
}
