package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"boxoffice/internal/inventory"
	"boxoffice/pkg/logger"

	"github.com/IBM/sarama"

	"log/slog"
)

// ChangeProducer publishes inventory and price mutations for live
// observers (seat maps, statistics panels).
type ChangeProducer interface {
	PublishInventoryChange(ctx context.Context, eventID, unitID string, status inventory.Status) error
	PublishPriceChange(ctx context.Context, eventID string, document json.RawMessage) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka change producer
type KafkaProducerConfig struct {
	Brokers      []string
	ChangesTopic string
	RetryMax     int
	TimeoutMs    int
	RequiredAcks sarama.RequiredAcks
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:      []string{"localhost:9092"},
		ChangesTopic: "inventory-changes",
		RetryMax:     3,
		TimeoutMs:    10000,
		RequiredAcks: sarama.WaitForAll,
	}
}

// KafkaChangeProducer publishes change messages to Kafka.
type KafkaChangeProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

func NewKafkaChangeProducer(config *KafkaProducerConfig) (*KafkaChangeProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond

	// Hash on event id so each event's changes stay ordered per partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaChangeProducer{
		producer: producer,
		config:   config,
	}, nil
}

func (p *KafkaChangeProducer) PublishInventoryChange(ctx context.Context, eventID, unitID string, status inventory.Status) error {
	msg := &ChangeMessage{
		Type: MessageTypeInventoryChange,
		Inventory: &InventoryChange{
			EventID:   eventID,
			UnitID:    unitID,
			Status:    string(status),
			Timestamp: time.Now(),
		},
	}
	return p.publish(eventID, msg)
}

func (p *KafkaChangeProducer) PublishPriceChange(ctx context.Context, eventID string, document json.RawMessage) error {
	msg := &ChangeMessage{
		Type: MessageTypePriceChange,
		Price: &PriceChange{
			EventID:   eventID,
			Document:  document,
			Timestamp: time.Now(),
		},
	}
	return p.publish(eventID, msg)
}

func (p *KafkaChangeProducer) publish(eventID string, msg *ChangeMessage) error {
	messageBytes, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal change message: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.config.ChangesTopic,
		Key:   sarama.StringEncoder(eventID),
		Value: sarama.ByteEncoder(messageBytes),
	})
	if err != nil {
		return fmt.Errorf("failed to publish change message: %w", err)
	}

	logger.GetDefault().Debug("change message published",
		slog.String("event_id", eventID),
		slog.String("type", msg.Type),
		slog.Int64("partition", int64(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

func (p *KafkaChangeProducer) Close() error {
	return p.producer.Close()
}
