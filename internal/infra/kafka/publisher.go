package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// MessageWriter — то, что нужно от kafka.Writer (в тестах подменяется).
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BatchEventPublisher публикует события задач догрузки, ключ сообщения — process_id.
type BatchEventPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewBatchEventPublisher(cfg config.KafkaConfig, logger *slog.Logger) *BatchEventPublisher {
	return NewBatchEventPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}, logger)
}

func NewBatchEventPublisherWithWriter(w MessageWriter, logger *slog.Logger) *BatchEventPublisher {
	return &BatchEventPublisher{writer: w, logger: logger}
}

func (p *BatchEventPublisher) Publish(ctx context.Context, event domain.BatchEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal batch event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProcessID),
		Value: v,
		Time:  event.At,
	})
	if err != nil {
		return fmt.Errorf("write batch event: %w", err)
	}
	p.logger.Debug("batch event published", "process_id", event.ProcessID, "status", event.Status)
	return nil
}

func (p *BatchEventPublisher) Close() error {
	return p.writer.Close()
}
