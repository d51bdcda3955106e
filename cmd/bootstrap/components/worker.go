package components

import (
	"context"
	"log/slog"

	repo_impl "hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/config"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(StartSweeper),
)

func NewSweeper(
	blocks *repo_impl.BlockRepository,
	reservations usecase.ReservationStore,
	gw usecase.ServiceGateway,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) *worker.Sweeper {
	return worker.NewSweeper(blocks, reservations, gw, clk, logger, cfg.Sweeper)
}

func StartSweeper(lc fx.Lifecycle, sweeper *worker.Sweeper) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
