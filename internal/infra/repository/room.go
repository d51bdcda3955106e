package repository

import (
	"context"
	"fmt"

	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/room"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

const roomColumns = `id, hotel_id, number, type, floor, max_guests, base_nightly_cents, features, active`

func scanRoom(row pgx.Row) (room.Room, error) {
	var (
		rm    room.Room
		cents int64
	)
	err := row.Scan(&rm.ID, &rm.HotelID, &rm.Number, &rm.Type, &rm.Floor, &rm.MaxGuests, &cents, &rm.Features, &rm.Active)
	if err != nil {
		return room.Room{}, err
	}
	rm.BaseNightly = reservation.NewMoney(cents)
	return rm, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (room.Room, error) {
	rm, err := scanRoom(r.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return room.Room{}, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return room.Room{}, infra.WrapRepoErr("failed to find room", err)
	}
	return rm, nil
}

// SearchAvailable lists active rooms of a hotel not covered by any active
// block overlapping the range, ordered by room number so the saga's
// first-candidate pick is deterministic. The price ceiling applies to the
// nightly rate.
func (r *RoomRepository) SearchAvailable(
	ctx context.Context,
	hotelID uuid.UUID,
	stayRange stay.Range,
	roomType *pricing.RoomType,
	maxNightly *reservation.Money,
	minGuests int,
) ([]room.Room, error) {
	query := `
SELECT ` + roomColumns + `
FROM rooms r
WHERE r.hotel_id = $1 AND r.active
AND NOT EXISTS (
	SELECT 1 FROM room_blocks b
	WHERE b.room_id = r.id AND b.status = 'active'
	AND b.check_in < $3 AND $2 < b.check_out
)`
	args := []any{hotelID, stayRange.CheckIn(), stayRange.CheckOut()}

	if roomType != nil {
		args = append(args, *roomType)
		query += fmt.Sprintf(` AND r.type = $%d`, len(args))
	}
	if maxNightly != nil {
		args = append(args, maxNightly.Cents())
		query += fmt.Sprintf(` AND r.base_nightly_cents <= $%d`, len(args))
	}
	if minGuests > 0 {
		args = append(args, minGuests)
		query += fmt.Sprintf(` AND r.max_guests >= $%d`, len(args))
	}
	query += ` ORDER BY r.number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search rooms", err)
	}
	defer rows.Close()

	var result []room.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return result, nil
}
