package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQTopicRequired is returned when the topic is empty.
	ErrNSQTopicRequired = errors.New("pkgmessage: nsq topic is required")
	// ErrNSQHandlerRequired is returned when Consume is called with a nil handler.
	ErrNSQHandlerRequired = errors.New("pkgmessage: nsq handler is required")
	// ErrNSQProducerAddrRequired is returned when the producer address is missing.
	ErrNSQProducerAddrRequired = errors.New("pkgmessage: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when no NSQD/lookupd consumer addresses are configured.
	ErrNSQConsumerAddrsRequired = errors.New("pkgmessage: nsq consumer nsqd/lookupd addresses are required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	// ProducerAddr is the NSQD address for publishing.
	ProducerAddr string

	// Channel is the consumer channel name.
	Channel string

	// ConsumerNSQDAddrs lists NSQD addresses for consumers.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs lists lookupd addresses for consumers.
	ConsumerLookupdAddrs []string

	// ProducerConfig overrides the default producer config.
	ProducerConfig *nsq.Config
	// ConsumerConfig overrides the default consumer config.
	ConsumerConfig *nsq.Config
}

// NSQ is a messaging implementation backed by NSQ.
//
// NSQ has no native message headers, so events are wrapped in a small JSON
// envelope carrying body and headers.
type NSQ struct {
	producer *nsq.Producer

	channel              string
	consumerNSQDAddrs    []string
	consumerLookupdAddrs []string
	consumerConfig       *nsq.Config

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

type nsqEnvelope struct {
	Body    []byte            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

// NewNSQ constructs an NSQ messaging client.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	var producer *nsq.Producer
	if cfg.ProducerAddr != "" {
		pcfg := cfg.ProducerConfig
		if pcfg == nil {
			pcfg = nsq.NewConfig()
		}

		p, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
		if err != nil {
			return nil, fmt.Errorf("pkgmessage: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)

		producer = p
	}

	channel := cfg.Channel
	if channel == "" {
		channel = "default"
	}

	return &NSQ{
		producer:             producer,
		channel:              channel,
		consumerNSQDAddrs:    append([]string{}, cfg.ConsumerNSQDAddrs...),
		consumerLookupdAddrs: append([]string{}, cfg.ConsumerLookupdAddrs...),
		consumerConfig:       cfg.ConsumerConfig,
	}, nil
}

// Close stops all consumers and the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.consumers = nil
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends an event to an NSQ topic.
func (n *NSQ) Publish(ctx context.Context, destination string, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrNSQTopicRequired
	}
	if n.producer == nil {
		return ErrNSQProducerAddrRequired
	}

	payload, err := json.Marshal(nsqEnvelope{Body: evt.Body, Headers: evt.Headers})
	if err != nil {
		return fmt.Errorf("pkgmessage: nsq encode: %w", err)
	}

	if err := n.producer.Publish(destination, payload); err != nil {
		return fmt.Errorf("pkgmessage: nsq publish: %w", err)
	}
	return nil
}

// Consume starts consuming events from an NSQ topic.
//
// A handler error requeues the message using NSQ's backoff.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNSQTopicRequired
	}
	if handler == nil {
		return ErrNSQHandlerRequired
	}
	if len(n.consumerNSQDAddrs) == 0 && len(n.consumerLookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	ccfg := n.consumerConfig
	if ccfg == nil {
		ccfg = nsq.NewConfig()
	}

	consumer, err := nsq.NewConsumer(source, n.channel, ccfg)
	if err != nil {
		return fmt.Errorf("pkgmessage: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	wrapped := recoverHandler(handler)
	consumer.AddHandler(nsq.HandlerFunc(func(msg *nsq.Message) error {
		var env nsqEnvelope
		if err := json.Unmarshal(msg.Body, &env); err != nil {
			// Not one of ours, pass the raw body through.
			env = nsqEnvelope{Body: msg.Body}
		}

		return wrapped(ctx, Delivery{
			Body:      env.Body,
			Headers:   env.Headers,
			Source:    source,
			Timestamp: time.Unix(0, msg.Timestamp),
		})
	}))

	if len(n.consumerNSQDAddrs) > 0 {
		err = consumer.ConnectToNSQDs(n.consumerNSQDAddrs)
	} else {
		err = consumer.ConnectToNSQLookupds(n.consumerLookupdAddrs)
	}
	if err != nil {
		consumer.Stop()
		return fmt.Errorf("pkgmessage: nsq connect: %w", err)
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		consumer.Stop()
		return errors.New("pkgmessage: nsq client is closed")
	}
	n.consumers = append(n.consumers, consumer)
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		consumer.Stop()
	}()

	return nil
}
