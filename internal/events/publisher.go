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

// Event types emitted by the portal.
const (
	EventUserInvited   = "user.invited"
	EventUserSignedUp  = "user.signed_up"
	EventUserDeleted   = "user.deleted"
	EventGradeRecorded = "grade.recorded"
)

// Event is the envelope published to the event stream. Data carries the
// type-specific payload.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:         watermill.NewUUID(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher emits portal events. Publishing is best-effort from the caller's
// point of view: services log failures but do not fail the request.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ===== KAFKA =====

// KafkaPublisher publishes events to a single Kafka topic via watermill.
type KafkaPublisher struct {
	publisher message.Publisher
	topic     string
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		topic:     topic,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	return p.publisher.Publish(p.topic, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// ===== NOOP =====

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event *Event) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }

// NewPublisher returns a Kafka publisher when brokers are configured, a noop
// publisher otherwise.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(brokers, topic, logger)
}

// ===== MOCK =====

// MockPublisher records events for assertions in tests.
type MockPublisher struct {
	mu     sync.Mutex
	events []*Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (p *MockPublisher) Publish(ctx context.Context, event *Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *MockPublisher) Close() error { return nil }

// GetPublishedEvents returns a copy of everything published so far.
func (p *MockPublisher) GetPublishedEvents() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Event, len(p.events))
	copy(out, p.events)
	return out
}
