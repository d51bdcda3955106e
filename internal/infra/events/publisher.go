package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-reservations/internal/pkg/config"
	"hotel-reservations/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// Envelope is the wire frame for every reservation event. Consumers route
// on Type and ignore payload fields they do not know.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// KafkaPublisher writes reservation events to a single topic, keyed by
// event type so per-type ordering is preserved within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode event payload")
	}
	env, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode event envelope")
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: env,
	}); err != nil {
		return errs.Wrap(err, "failed to write event to kafka")
	}
	p.logger.Debug("event published", "type", eventType)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
