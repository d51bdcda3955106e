package usecase

import (
	"context"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/stay"

	"github.com/google/uuid"
)

// AvailabilityQueries exposes the lock subsystem directly: searching rooms
// and managing blocks outside a saga (front-desk holds, maintenance).
type AvailabilityQueries interface {
	Search(ctx context.Context, hotelID uuid.UUID, r stay.Range, filter SearchFilter) ([]RoomCandidate, error)
	Block(ctx context.Context, roomID uuid.UUID, r stay.Range, kind availability.BlockKind) (HoldReceipt, error)
	Release(ctx context.Context, blockID uuid.UUID) error
}

type AvailabilityUseCase struct {
	gateway ServiceGateway
	holdTTL time.Duration
}

var _ AvailabilityQueries = (*AvailabilityUseCase)(nil)

func NewAvailabilityUseCase(gateway ServiceGateway, holdTTL time.Duration) *AvailabilityUseCase {
	return &AvailabilityUseCase{gateway: gateway, holdTTL: holdTTL}
}

func (u *AvailabilityUseCase) Search(ctx context.Context, hotelID uuid.UUID, r stay.Range, filter SearchFilter) ([]RoomCandidate, error) {
	return u.gateway.SearchAvailability(ctx, hotelID, r, filter)
}

// Block creates an administrative block. Temporary holds carry the usual
// TTL; maintenance blocks stay until released by staff.
func (u *AvailabilityUseCase) Block(ctx context.Context, roomID uuid.UUID, r stay.Range, kind availability.BlockKind) (HoldReceipt, error) {
	ttl := u.holdTTL
	if kind == availability.KindMaintenance {
		ttl = 0
	}
	return u.gateway.HoldRoom(ctx, roomID, r, kind, ttl)
}

func (u *AvailabilityUseCase) Release(ctx context.Context, blockID uuid.UUID) error {
	return u.gateway.ReleaseHold(ctx, blockID)
}
