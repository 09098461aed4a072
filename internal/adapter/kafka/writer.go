package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-advisor-service/internal/config"
	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces advice analytics events to a Kafka topic.
// It implements advisor.AdvicePublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured advice topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAdviceTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAdvice serializes and publishes one advice event. Events for the
// same city and activity share a key so they land on the same partition.
func (w *Writer) PublishAdvice(ctx context.Context, event domain.AdviceEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AdviceEvent into a Kafka message.
func serializeToMessage(event domain.AdviceEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advice event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.City + "|" + event.Activity),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "recommendation", Value: []byte(event.Recommendation)},
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
