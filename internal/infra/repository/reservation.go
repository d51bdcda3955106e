package repository

import (
	"context"
	"time"

	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository is the sole writer of reservation rows. Lifecycle
// transitions go through SetStatus, which enforces the state machine with a
// conditional update.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = `id, customer_id, hotel_id, room_id, check_in, check_out, status, total_cents, block_id, transaction_id, guest_count, add_ons, created_at, updated_at`

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var (
		res               reservation.Reservation
		checkIn, checkOut time.Time
		cents             int64
	)
	err := row.Scan(
		&res.ID, &res.CustomerID, &res.HotelID, &res.RoomID,
		&checkIn, &checkOut, &res.Status, &cents,
		&res.BlockID, &res.TransactionID, &res.GuestCount, &res.AddOns,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return reservation.Reservation{}, err
	}
	res.Total = reservation.NewMoney(cents)
	res.Range, err = stay.NewRange(checkIn, checkOut)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO reservations (id, customer_id, hotel_id, room_id, check_in, check_out, status, total_cents, block_id, transaction_id, guest_count, add_ons, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		res.ID, res.CustomerID, res.HotelID, res.RoomID,
		res.Range.CheckIn(), res.Range.CheckOut(), res.Status, res.Total.Cents(),
		res.BlockID, res.TransactionID, res.GuestCount, res.AddOns,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("duplicate reservation", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("referenced entity missing", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	res, err := scanReservation(r.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return reservation.Reservation{}, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return reservation.Reservation{}, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

// SetStatus transitions the lifecycle state. The WHERE clause only matches
// rows whose current status permits the transition, so an illegal move
// reports INVALID_STATE instead of clobbering state.
func (r *ReservationRepository) SetStatus(ctx context.Context, id uuid.UUID, next reservation.Status, now time.Time) (reservation.Reservation, error) {
	from := allowedFrom(next)
	if len(from) == 0 {
		return reservation.Reservation{}, infra.WrapRepoErr("no transition leads to "+next.String(), nil, infra.KindInvalidState)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, `
UPDATE reservations
SET status = $2, updated_at = $3
WHERE id = $1 AND status = ANY($4)
RETURNING `+reservationColumns,
		id, next, now, from,
	))
	if err == nil {
		return res, nil
	}
	if err != pgx.ErrNoRows {
		return reservation.Reservation{}, infra.WrapRepoErr("failed to update reservation status", err)
	}

	var exists bool
	if scanErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id,
	).Scan(&exists); scanErr != nil {
		return reservation.Reservation{}, infra.WrapRepoErr("failed to check reservation existence", scanErr)
	}
	if !exists {
		return reservation.Reservation{}, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservation.Reservation{}, infra.WrapRepoErr("transition to "+next.String()+" not permitted", nil, infra.KindInvalidState)
}

// allowedFrom derives the statuses that may move to next from the domain
// state machine, keeping SQL and domain rules in one place.
func allowedFrom(next reservation.Status) []string {
	all := []reservation.Status{
		reservation.StatusCreated,
		reservation.StatusConfirmed,
		reservation.StatusCancelled,
		reservation.StatusCheckedIn,
		reservation.StatusCheckedOut,
	}
	var from []string
	for _, s := range all {
		if s.CanTransitionTo(next) {
			from = append(from, s.String())
		}
	}
	return from
}

type ReservationPatch struct {
	GuestCount *int
	AddOns     *[]string
}

// UpdateFields patches mutable fields; permitted only while the reservation
// is still CREATED or CONFIRMED.
func (r *ReservationRepository) UpdateFields(ctx context.Context, id uuid.UUID, patch ReservationPatch, now time.Time) (reservation.Reservation, error) {
	res, err := scanReservation(r.pool.QueryRow(ctx, `
UPDATE reservations
SET guest_count = COALESCE($2, guest_count),
	add_ons = COALESCE($3, add_ons),
	updated_at = $4
WHERE id = $1 AND status IN ('CREATED', 'CONFIRMED')
RETURNING `+reservationColumns,
		id, patch.GuestCount, patch.AddOns, now,
	))
	if err == nil {
		return res, nil
	}
	if err != pgx.ErrNoRows {
		return reservation.Reservation{}, infra.WrapRepoErr("failed to update reservation", err)
	}

	var exists bool
	if scanErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id,
	).Scan(&exists); scanErr != nil {
		return reservation.Reservation{}, infra.WrapRepoErr("failed to check reservation existence", scanErr)
	}
	if !exists {
		return reservation.Reservation{}, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservation.Reservation{}, infra.WrapRepoErr("reservation not modifiable in current state", nil, infra.KindInvalidState)
}

// ListStuckCreated returns CREATED reservations older than the cutoff; the
// sweeper retries their confirm step.
func (r *ReservationRepository) ListStuckCreated(ctx context.Context, cutoff time.Time, limit int) ([]reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE status = 'CREATED' AND created_at < $1 ORDER BY created_at LIMIT $2`,
		cutoff, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stuck reservations", err)
	}
	defer rows.Close()

	var result []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}
