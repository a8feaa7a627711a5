// Package events carries the fire-and-forget announcements the booking flow
// makes after a reservation commits. NATS is the transport; publishers never
// wait for an acknowledgment.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/coworkly/spaces-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        uuid.NewString(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        uuid.NewString(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Subjects.
const (
	ReservationCreated = "reservation.created"
)

// ReservationCreatedEvent announces a newly committed reservation.
type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	RoomCode      string    `json:"room_code"`
	Responsible   string    `json:"responsible"`
	ScheduledTime string    `json:"scheduled_time"`
	CreatedAt     time.Time `json:"created_at"`
}
