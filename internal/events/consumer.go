package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/repository"
)

// CatalogEventType represents the type of catalog event.
type CatalogEventType string

const (
	CatalogEventPackageChanged CatalogEventType = "catalog.package_changed"
	CatalogEventProductChanged CatalogEventType = "catalog.product_changed"
	CatalogEventStaffChanged   CatalogEventType = "catalog.staff_changed"
)

// CatalogEvent signals that the booking backend's catalog changed and cached
// lookups are stale.
type CatalogEvent struct {
	ID        string           `json:"id"`
	Type      CatalogEventType `json:"type"`
	EntityID  int64            `json:"entity_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// KafkaConsumer consumes catalog events and invalidates the catalog cache so
// the next lookup refetches from the backend.
type KafkaConsumer struct {
	reader *kafka.Reader
	cache  repository.CatalogCache
	logger *zap.Logger
	stopCh chan struct{}
}

// NewKafkaConsumer creates a new Kafka-based catalog event consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, cache repository.CatalogCache, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.CatalogTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader: reader,
		cache:  cache,
		logger: logger.Named("catalog-consumer"),
		stopCh: make(chan struct{}),
	}
}

// Start begins consuming events.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting catalog event consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Catalog event consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", zap.Error(err))
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message",
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var event CatalogEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.Type {
	case CatalogEventPackageChanged, CatalogEventProductChanged, CatalogEventStaffChanged:
		c.logger.Info("Catalog changed, invalidating cache",
			zap.String("type", string(event.Type)),
			zap.Int64("entity_id", event.EntityID),
		)
		if err := c.cache.Invalidate(ctx); err != nil {
			c.logger.Error("Failed to invalidate catalog cache", zap.Error(err))
		}
	default:
		c.logger.Debug("Ignoring unknown event type", zap.String("type", string(event.Type)))
	}
}
