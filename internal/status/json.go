package status

import (
	"encoding/json"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Keys          []KeyJSON    `json:"keys"`
	TotalPresses  int          `json:"total_presses"`
	LastKey       *LastKeyJSON `json:"last_key,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Serial        SerialStatus `json:"serial"`
	MQTT          MQTTStatus   `json:"mqtt"`
	GPIOErrors    int          `json:"gpio_errors"`
	Config        ConfigJSON   `json:"config"`
}

// KeyJSON is the JSON representation of one switch channel.
type KeyJSON struct {
	Pin    string `json:"pin"`
	Symbol string `json:"symbol"`
	Level  string `json:"level"`
	Count  int    `json:"count"`
}

// LastKeyJSON is the JSON representation of the most recent emitted key.
type LastKeyJSON struct {
	Symbol    string `json:"symbol"`
	Pin       string `json:"pin"`
	Timestamp string `json:"timestamp"`
}

// SerialStatus reports the serial link configuration and health.
type SerialStatus struct {
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	Format      string `json:"format"`
	WriteErrors int    `json:"write_errors"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	Format      string `json:"format"`
	PollMs      int64  `json:"poll_ms"`
	HoldoffMs   int64  `json:"holdoff_ms"`
	Strategy    string `json:"strategy"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	keys := make([]KeyJSON, len(snap.Keys))
	for i, k := range snap.Keys {
		keys[i] = KeyJSON{
			Pin:    k.Pin,
			Symbol: k.Symbol,
			Level:  string(scan.LevelFor(k.Pressed)),
			Count:  k.Count,
		}
	}

	inner := StatusInner{
		Keys:          keys,
		TotalPresses:  snap.TotalPresses,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Serial: SerialStatus{
			Device:      snap.Config.Device,
			Baud:        snap.Config.Baud,
			Format:      snap.Config.Format,
			WriteErrors: snap.SerialErrors,
		},
		MQTT: MQTTStatus{
			Enabled:   snap.Config.Broker != "",
			Connected: snap.MQTTConnected,
			Broker:    snap.Config.Broker,
		},
		GPIOErrors: snap.GPIOErrors,
		Config: ConfigJSON{
			Device:      snap.Config.Device,
			Baud:        snap.Config.Baud,
			Format:      snap.Config.Format,
			PollMs:      snap.Config.PollMs,
			HoldoffMs:   snap.Config.HoldoffMs,
			Strategy:    snap.Config.Strategy,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}

	if snap.LastSymbol != "" {
		inner.LastKey = &LastKeyJSON{
			Symbol:    snap.LastSymbol,
			Pin:       snap.LastPin,
			Timestamp: snap.LastPressAt.UTC().Format(time.RFC3339),
		}
	}

	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
