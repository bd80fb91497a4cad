package mqtt

import "log"

// message is a serialized MQTT publish awaiting a broker connection.
type message struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// queue is a bounded FIFO for messages accumulated while disconnected.
// Once full, the oldest message is dropped for each new one. Not safe for
// concurrent use; RealPublisher holds its own lock.
type queue struct {
	msgs    []message
	bound   int
	dropped int
}

func newQueue(bound int) *queue {
	return &queue{bound: bound}
}

func (q *queue) push(m message) {
	if len(q.msgs) == q.bound {
		// Log once per overflow episode, not per message.
		if q.dropped == 0 {
			log.Printf("mqtt: offline queue full (%d messages), dropping oldest", q.bound)
		}
		q.dropped++
		copy(q.msgs, q.msgs[1:])
		q.msgs[len(q.msgs)-1] = m
		return
	}
	q.msgs = append(q.msgs, m)
}

// takeAll removes and returns all queued messages, oldest first, and
// resets the overflow episode.
func (q *queue) takeAll() []message {
	if len(q.msgs) == 0 {
		return nil
	}
	out := q.msgs
	q.msgs = nil
	q.dropped = 0
	return out
}

func (q *queue) size() int {
	return len(q.msgs)
}
