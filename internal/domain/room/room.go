package room

import (
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

// Room is a catalog entry. The catalog is read-only in this service; rooms
// are provisioned out of band.
type Room struct {
	ID          uuid.UUID
	HotelID     uuid.UUID
	Number      string
	Type        pricing.RoomType
	Floor       int
	MaxGuests   int
	BaseNightly reservation.Money
	Features    []string
	Active      bool
}
