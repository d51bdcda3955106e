package components

import (
	"hotel-reservations/internal/handler"
	"hotel-reservations/internal/handler/api"
	"hotel-reservations/internal/handler/middleware"
	"hotel-reservations/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewNotificationHandler,
		NewAuthMiddleware,
		NewIdempotencyMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthMiddleware(cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(cfg.JWT)
}

func NewIdempotencyMiddleware(rdb *redis.Client, cfg config.Config) *middleware.IdempotencyMiddleware {
	return middleware.NewIdempotencyMiddleware(rdb, cfg.Redis.IdempotencyTTL)
}
