package components

import (
	"log/slog"

	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/config"
	"hotel-reservations/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			NewOrchestrator,
			fx.As(new(usecase.ReservationSagas)),
		),
		fx.Annotate(
			usecase.NewReservationUseCase,
			fx.As(new(usecase.ReservationQueries)),
		),
		fx.Annotate(
			NewAvailabilityUseCase,
			fx.As(new(usecase.AvailabilityQueries)),
		),
	),
)

func NewOrchestrator(
	gw usecase.ServiceGateway,
	reservations usecase.ReservationStore,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) *usecase.Orchestrator {
	return usecase.NewOrchestrator(gw, reservations, clk, logger, cfg.Saga.HoldTTL, cfg.Saga.StepTimeout)
}

func NewAvailabilityUseCase(gw usecase.ServiceGateway, cfg config.Config) *usecase.AvailabilityUseCase {
	return usecase.NewAvailabilityUseCase(gw, cfg.Saga.HoldTTL)
}
