package repository

import (
	"context"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlockRepository is the availability lock store. Active blocks on one room
// must never overlap; Hold enforces that by serializing writers per room
// with a row lock on the rooms table, so the overlap check and the insert
// behave as one atomic unit.
type BlockRepository struct {
	pool *pgxpool.Pool
}

func NewBlockRepository(pool *pgxpool.Pool) *BlockRepository {
	return &BlockRepository{pool: pool}
}

const blockColumns = `id, room_id, check_in, check_out, kind, reservation_id, created_at, expires_at, status`

func scanBlock(row pgx.Row) (availability.RoomBlock, error) {
	var (
		b                 availability.RoomBlock
		checkIn, checkOut time.Time
	)
	err := row.Scan(&b.ID, &b.RoomID, &checkIn, &checkOut, &b.Kind, &b.ReservationID, &b.CreatedAt, &b.ExpiresAt, &b.Status)
	if err != nil {
		return availability.RoomBlock{}, err
	}
	b.Range, err = stay.NewRange(checkIn, checkOut)
	if err != nil {
		return availability.RoomBlock{}, err
	}
	return b, nil
}

// Hold inserts a new active block unless an active block on the same room
// overlaps the range. The room row lock orders concurrent holds for the
// same room; holds on different rooms do not contend.
func (r *BlockRepository) Hold(ctx context.Context, b availability.RoomBlock) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return infra.WrapRepoErr("failed to begin hold transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var roomExists bool
	err = tx.QueryRow(ctx,
		`SELECT active FROM rooms WHERE id = $1 FOR UPDATE`,
		b.RoomID,
	).Scan(&roomExists)
	if err != nil {
		if err == pgx.ErrNoRows {
			return infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock room", err)
	}
	if !roomExists {
		return infra.WrapRepoErr("room is not active", nil, infra.KindNotFound)
	}

	var overlapping bool
	err = tx.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM room_blocks
	WHERE room_id = $1 AND status = 'active'
	AND check_in < $3 AND $2 < check_out
)`,
		b.RoomID, b.Range.CheckIn(), b.Range.CheckOut(),
	).Scan(&overlapping)
	if err != nil {
		return infra.WrapRepoErr("failed to check overlapping blocks", err)
	}
	if overlapping {
		return infra.WrapRepoErr("room already blocked for range", nil, infra.KindConflict)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO room_blocks (id, room_id, check_in, check_out, kind, reservation_id, created_at, expires_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.RoomID, b.Range.CheckIn(), b.Range.CheckOut(), b.Kind, b.ReservationID, b.CreatedAt, b.ExpiresAt, b.Status,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert block", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit hold", err)
	}
	return nil
}

func (r *BlockRepository) FindByID(ctx context.Context, id uuid.UUID) (availability.RoomBlock, error) {
	b, err := scanBlock(r.pool.QueryRow(ctx,
		`SELECT `+blockColumns+` FROM room_blocks WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return availability.RoomBlock{}, infra.WrapRepoErr("block not found", err, infra.KindNotFound)
		}
		return availability.RoomBlock{}, infra.WrapRepoErr("failed to find block", err)
	}
	return b, nil
}

// Confirm promotes an active block to confirmed. The status guard makes the
// update a compare-and-swap, so a concurrent sweep cannot silently undo it:
// whichever side observes 'active' first wins.
func (r *BlockRepository) Confirm(ctx context.Context, blockID, reservationID uuid.UUID) (availability.RoomBlock, error) {
	b, err := scanBlock(r.pool.QueryRow(ctx, `
UPDATE room_blocks
SET status = 'confirmed', reservation_id = $2, kind = 'reservation'
WHERE id = $1 AND status = 'active'
RETURNING `+blockColumns,
		blockID, reservationID,
	))
	if err == nil {
		return b, nil
	}
	if err != pgx.ErrNoRows {
		return availability.RoomBlock{}, infra.WrapRepoErr("failed to confirm block", err)
	}

	// No row updated: distinguish missing from non-active.
	var status availability.BlockStatus
	scanErr := r.pool.QueryRow(ctx, `SELECT status FROM room_blocks WHERE id = $1`, blockID).Scan(&status)
	if scanErr == pgx.ErrNoRows {
		return availability.RoomBlock{}, infra.WrapRepoErr("block not found", scanErr, infra.KindNotFound)
	}
	if scanErr != nil {
		return availability.RoomBlock{}, infra.WrapRepoErr("failed to read block status", scanErr)
	}
	return availability.RoomBlock{}, infra.WrapRepoErr("block is not active", nil, infra.KindInvalidState)
}

// Release forces a block out of the active set. Releasing an already
// terminal block is a no-op so double compensation stays harmless.
func (r *BlockRepository) Release(ctx context.Context, blockID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE room_blocks SET status = 'expired' WHERE id = $1 AND status = 'active'`,
		blockID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release block", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM room_blocks WHERE id = $1)`, blockID,
	).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check block existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("block not found", nil, infra.KindNotFound)
	}
	return nil
}

// SweepExpired bulk-expires active blocks past their deadline. The status
// guard keeps it from touching anything a concurrent Confirm promoted.
func (r *BlockRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE room_blocks
SET status = 'expired'
WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at < $1`,
		now,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sweep expired blocks", err)
	}
	return tag.RowsAffected(), nil
}
