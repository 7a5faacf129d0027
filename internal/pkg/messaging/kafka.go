package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("pkgmessage: kafka topic is required")
	// ErrKafkaHandlerRequired is returned when Consume is called with a nil handler.
	ErrKafkaHandlerRequired = errors.New("pkgmessage: kafka handler is required")
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("pkgmessage: kafka brokers are required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers lists Kafka broker addresses.
	Brokers []string

	// GroupID is the consumer group used by Consume.
	GroupID string

	// Dialer configures broker connections.
	Dialer *kafka.Dialer
}

// Kafka is a messaging implementation backed by kafka-go.
type Kafka struct {
	brokers []string
	groupID string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka messaging client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		groupID: cfg.GroupID,
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all Kafka readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := make([]*kafka.Writer, 0, len(k.writers))
	for _, w := range k.writers {
		writers = append(writers, w)
	}
	k.writers = nil
	readers := append([]*kafka.Reader{}, k.readers...)
	k.readers = nil
	k.mu.Unlock()

	var closeErr error
	for _, r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish sends an event to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrKafkaTopicRequired
	}

	writer, err := k.getWriter(destination)
	if err != nil {
		return err
	}

	kmsg := kafka.Message{
		Key:   evt.Key,
		Value: evt.Body,
		Time:  time.Now(),
	}
	for hk, hv := range evt.Headers {
		if hk == "" {
			continue
		}
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: hk, Value: []byte(hv)})
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return fmt.Errorf("pkgmessage: kafka publish: %w", err)
	}
	return nil
}

// Consume starts consuming events from a Kafka topic.
//
// Offsets are committed only after the handler returns nil, so a handler
// error leaves the message for redelivery.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}

	rcfg := kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   source,
		GroupID: k.groupID,
		Dialer:  k.dialer,
	}
	reader := kafka.NewReader(rcfg)

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		_ = reader.Close()
		return errors.New("pkgmessage: kafka client is closed")
	}
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	wrapped := recoverHandler(handler)
	go func() {
		for {
			kmsg, err := reader.FetchMessage(ctx)
			if err != nil {
				return
			}

			headers := make(map[string]string, len(kmsg.Headers))
			for _, h := range kmsg.Headers {
				headers[h.Key] = string(h.Value)
			}

			herr := wrapped(ctx, Delivery{
				Body:      kmsg.Value,
				Key:       kmsg.Key,
				Headers:   headers,
				Source:    kmsg.Topic,
				Timestamp: kmsg.Time,
			})
			if herr != nil {
				continue
			}

			_ = reader.CommitMessages(ctx, kmsg)
		}
	}()

	return nil
}

func (k *Kafka) getWriter(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, errors.New("pkgmessage: kafka client is closed")
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	k.writers[topic] = w
	return w, nil
}
