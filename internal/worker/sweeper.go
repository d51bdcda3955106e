package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/config"
	"hotel-reservations/internal/pkg/errs"
	"hotel-reservations/internal/usecase"

	"github.com/google/uuid"
)

const reconcileBatchSize = 50

// BlockStore is the slice of the block repository the sweeper needs.
type BlockStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (availability.RoomBlock, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper is the background janitor of the lock subsystem. Each pass it
// expires overdue holds, then reconciles reservations stuck in CREATED: a
// crash between the charge and the confirm leaves a paid reservation whose
// hold was never promoted, so the sweeper retries the remaining steps.
type Sweeper struct {
	blocks       BlockStore
	reservations usecase.ReservationStore
	gateway      usecase.ServiceGateway
	clock        clock.Clock
	logger       *slog.Logger
	interval     time.Duration
	// reconcileAfter keeps the sweeper away from sagas still in flight.
	reconcileAfter time.Duration
}

func NewSweeper(
	blocks BlockStore,
	reservations usecase.ReservationStore,
	gateway usecase.ServiceGateway,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.SweeperConfig,
) *Sweeper {
	return &Sweeper{
		blocks:         blocks,
		reservations:   reservations,
		gateway:        gateway,
		clock:          clk,
		logger:         logger,
		interval:       cfg.Interval,
		reconcileAfter: cfg.ReconcileAfter,
	}
}

// Run loops until the context is cancelled. One pass runs immediately so a
// restart does not wait a full interval to clean up.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single pass. Errors are logged and the pass continues;
// the next tick retries whatever this one could not finish.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.clock.Now()

	expired, err := s.blocks.SweepExpired(ctx, now)
	if err != nil {
		s.logger.Error("failed to sweep expired holds", "error", err)
	} else if expired > 0 {
		s.logger.Info("expired overdue holds", "count", expired)
	}

	s.reconcile(ctx, now)
}

func (s *Sweeper) reconcile(ctx context.Context, now time.Time) {
	cutoff := now.Add(-s.reconcileAfter)
	stuck, err := s.reservations.ListStuckCreated(ctx, cutoff, reconcileBatchSize)
	if err != nil {
		s.logger.Error("failed to list stuck reservations", "error", err)
		return
	}

	for _, res := range stuck {
		if err := s.finishCreation(ctx, res); err != nil {
			s.logger.Error("failed to reconcile reservation",
				"reservation_id", res.ID, "block_id", res.BlockID, "error", err)
		}
	}
}

// finishCreation replays the tail of the creation saga: confirm the hold,
// then promote the reservation. A block already confirmed to this
// reservation means a previous pass crashed between the two steps, so only
// the promotion is retried. A hold that expired before reconciliation is
// left for operator attention; silently confirming it could double-book.
func (s *Sweeper) finishCreation(ctx context.Context, res reservation.Reservation) error {
	if err := s.gateway.ConfirmHold(ctx, res.BlockID, res.ID); err != nil {
		if !errors.Is(err, errs.ErrInvalidState) {
			return err
		}
		block, findErr := s.blocks.FindByID(ctx, res.BlockID)
		if findErr != nil {
			return findErr
		}
		if block.Status != availability.StatusConfirmed || block.ReservationID == nil || *block.ReservationID != res.ID {
			return err
		}
	}
	if _, err := s.reservations.SetStatus(ctx, res.ID, reservation.StatusConfirmed, s.clock.Now()); err != nil {
		return err
	}
	s.logger.Info("reconciled stuck reservation", "reservation_id", res.ID)
	return nil
}
