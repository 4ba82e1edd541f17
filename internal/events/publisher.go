package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher defines the interface for publishing dashboard events.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// PublisherConfig holds configuration for the Kafka event publisher.
type PublisherConfig struct {
	KafkaBrokers []string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
	}, nil
}

// Publish serializes the event envelope and publishes it to the topic.
func (p *KafkaEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(topic, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"topic", topic,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", topic)

	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher records events in memory. Used in tests and when event
// publishing is disabled by configuration.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	topics []string
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	m.topics = append(m.topics, topic)
	m.logger.Debug("Mock: published event", "event_id", event.ID, "event_type", event.Type, "topic", topic)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// PublishedEvents returns a copy of every recorded event.
func (m *MockEventPublisher) PublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// PublishedTopics returns the topic of each recorded event, in order.
func (m *MockEventPublisher) PublishedTopics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.topics))
	copy(out, m.topics)
	return out
}

// ClearEvents drops all recorded events.
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	m.topics = nil
}

var _ EventPublisher = (*KafkaEventPublisher)(nil)
var _ EventPublisher = (*MockEventPublisher)(nil)
