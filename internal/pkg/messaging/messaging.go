package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume events.
//
// Implementations can wrap NATS, NSQ, Kafka or any other messaging system.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes events to a destination (topic/subject/queue).
type Publisher interface {
	// Publish sends an event to the destination.
	Publish(ctx context.Context, destination string, evt Event) error
}

// Consumer consumes events from a source (topic/subject/queue).
type Consumer interface {
	// Consume starts consuming events from the source.
	Consume(ctx context.Context, source string, handler Handler) error
}

// Handler processes a received event.
//
// A nil return acknowledges the delivery. A non-nil return lets the broker
// redeliver where the broker supports it.
type Handler func(ctx context.Context, d Delivery) error

// Event is a broker-agnostic event to be published.
type Event struct {
	// Body is the event payload.
	Body []byte

	// Key is used by Kafka for partitioning. Other brokers ignore it.
	Key []byte

	// Headers carry stringly-typed event metadata.
	Headers map[string]string
}

// Delivery is a broker-agnostic received event.
type Delivery struct {
	// Body is the event payload.
	Body []byte

	// Key is the partition key when the broker has one.
	Key []byte

	// Headers carry event metadata.
	Headers map[string]string

	// Source is the topic/subject the event arrived on.
	Source string

	// Timestamp is when the broker accepted the event, zero when unknown.
	Timestamp time.Time
}
