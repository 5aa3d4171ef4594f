package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// SaleEventPublisher publishes completed-sale events for downstream
// reporting. Publish failures are logged by callers, never surfaced to the
// user or retried.
type SaleEventPublisher interface {
	PublishAppointmentCompleted(ctx context.Context, appt *models.Appointment, quote *models.QuoteResponse) error
	PublishProductSold(ctx context.Context, sale *models.ProductSaleRequest) error
	Close() error
}

// EventType represents the type of sale event.
type EventType string

const (
	EventTypeAppointmentCompleted EventType = "appointment.completed"
	EventTypeProductSold          EventType = "product.sold"
)

// SaleEvent is the envelope for events on the sales topic.
type SaleEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

var _ SaleEventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publishes sale events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SalesTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.SalesTopic,
		logger: logger.Named("sale-events"),
	}
}

// PublishAppointmentCompleted publishes the completed appointment with its
// pricing breakdown (service and product commission reported separately).
func (p *KafkaPublisher) PublishAppointmentCompleted(ctx context.Context, appt *models.Appointment, quote *models.QuoteResponse) error {
	payload := struct {
		Appointment *models.Appointment   `json:"appointment"`
		Quote       *models.QuoteResponse `json:"quote"`
	}{
		Appointment: appt,
		Quote:       quote,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.publish(ctx, EventTypeAppointmentCompleted, data)
}

// PublishProductSold publishes one recorded product sale line.
func (p *KafkaPublisher) PublishProductSold(ctx context.Context, sale *models.ProductSaleRequest) error {
	data, err := json.Marshal(sale)
	if err != nil {
		return err
	}

	return p.publish(ctx, EventTypeProductSold, data)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, data []byte) error {
	event := &SaleEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// MockEventPublisher is a mock implementation for testing.
type MockEventPublisher struct {
	Completed []*models.Appointment
	Sold      []*models.ProductSaleRequest
}

// NewMockEventPublisher creates a mock event publisher.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishAppointmentCompleted(ctx context.Context, appt *models.Appointment, quote *models.QuoteResponse) error {
	m.Completed = append(m.Completed, appt)
	return nil
}

func (m *MockEventPublisher) PublishProductSold(ctx context.Context, sale *models.ProductSaleRequest) error {
	m.Sold = append(m.Sold, sale)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}
