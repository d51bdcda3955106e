package bootstrap

import (
	"context"
	"log/slog"

	"hotel-reservations/internal/infra/events"
	"hotel-reservations/internal/infra/gateway"
	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewKafkaPublisher,
		NewEventPublisher,
	),
)

func NewKafkaPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *events.KafkaPublisher {
	publisher := events.NewKafkaPublisher(cfg.Kafka, logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}

// NewEventPublisher wraps the kafka publisher with the notification history
// recorder; that composite is what the gateway publishes through.
func NewEventPublisher(
	publisher *events.KafkaPublisher,
	notifications *repository.NotificationRepository,
	clk clock.Clock,
	logger *slog.Logger,
) gateway.EventPublisher {
	return events.NewRecorder(publisher, notifications, clk, logger)
}
