package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second

	// queueBound caps the offline queue. At one message per keypress a
	// broker outage would need thousands of presses to overflow it.
	queueBound = 256
)

// RealPublisher publishes to an actual MQTT broker. While the broker is
// unreachable, messages are queued and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu    sync.Mutex
	queue *queue
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{
		queue: newQueue(queueBound),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("typewriter-scanner").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	p.client = client
	return p, nil
}

// PublishKey sends a key press event to the MQTT broker.
// QoS 0 (at-most-once), not retained.
func (p *RealPublisher) PublishKey(ev scan.Event) error {
	payload, err := FormatKeyPayload(ev)
	if err != nil {
		return fmt.Errorf("format key payload: %w", err)
	}
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
// QoS 1 (at-least-once) so lifecycle markers survive flaky links.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

// publish sends one message, or queues it while disconnected. Queued
// delivery is deferred, not failed, so the disconnected path returns nil.
func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.enqueue(message{topic: topic, qos: qos, retained: retained, payload: payload})
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) enqueue(m message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue.push(m)
}

// onConnect replays queued messages. Paho invokes it on the initial
// connect and after every automatic reconnect.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	msgs := p.queue.takeAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: replaying %d queued message(s)", len(msgs))
	for _, m := range msgs {
		token := client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(publishTimeout) {
			log.Printf("mqtt: replay timeout on %s", m.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed on %s: %v", m.topic, err)
		}
	}
}

// IsConnected reports whether the broker connection is currently up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker. Messages still queued are dropped.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // milliseconds to flush in-flight work
	return nil
}
