package availability

import (
	"time"

	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

type BlockKind string

const (
	KindTemporary   BlockKind = "temporary"
	KindReservation BlockKind = "reservation"
	KindMaintenance BlockKind = "maintenance"
)

type BlockStatus string

const (
	StatusActive    BlockStatus = "active"
	StatusExpired   BlockStatus = "expired"
	StatusConfirmed BlockStatus = "confirmed"
)

// IsTerminal reports whether the status can never change again. Status is
// monotone: active → expired | confirmed, and both targets are terminal.
func (s BlockStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusConfirmed
}

// RoomBlock is a time-bounded exclusive claim on a room for a date range.
// Active blocks on the same room must have pairwise disjoint ranges; the
// repository enforces that by serializing hold attempts per room.
type RoomBlock struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	Range         stay.Range
	Kind          BlockKind
	ReservationID *uuid.UUID
	CreatedAt     time.Time
	ExpiresAt     *time.Time
	Status        BlockStatus
}

func NewHold(roomID uuid.UUID, r stay.Range, kind BlockKind, now time.Time, ttl time.Duration) RoomBlock {
	b := RoomBlock{
		ID:        uuid.New(),
		RoomID:    roomID,
		Range:     r,
		Kind:      kind,
		CreatedAt: now,
		Status:    StatusActive,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		b.ExpiresAt = &expires
	}
	return b
}

// Confirm promotes an active hold into a permanent room assignment.
func (b *RoomBlock) Confirm(reservationID uuid.UUID) error {
	if b.Status != StatusActive {
		return errs.Mark(errs.Newf("block %s is %s", b.ID, b.Status), errs.ErrInvalidState)
	}
	b.Status = StatusConfirmed
	b.ReservationID = &reservationID
	return nil
}

// Expire forces the block out of the active set. Expiring an already-terminal
// block is a no-op so double compensation stays harmless.
func (b *RoomBlock) Expire() {
	if b.Status.IsTerminal() {
		return
	}
	b.Status = StatusExpired
}

// ExpiredBy reports whether the sweeper should expire this block at the
// given instant. Blocks without a deadline never expire by time.
func (b *RoomBlock) ExpiredBy(now time.Time) bool {
	return b.Status == StatusActive && b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}
