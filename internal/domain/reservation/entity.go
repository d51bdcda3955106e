package reservation

import (
	"time"

	"hotel-reservations/internal/domain/stay"

	"github.com/google/uuid"
)

// Reservation is owned exclusively by the reservation store; the saga never
// mutates one directly, only through store operations.
type Reservation struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	HotelID    uuid.UUID
	RoomID     uuid.UUID
	Range      stay.Range
	Status     Status
	Total      Money
	// BlockID links the confirmed room hold; TransactionID links the charge
	// for refund traceability.
	BlockID       uuid.UUID
	TransactionID *string
	GuestCount    int
	AddOns        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReservation builds the record the saga persists after payment succeeds.
// The id is allocated by the saga before the charge so the payment
// transaction can reference the reservation it pays for.
func NewReservation(
	id uuid.UUID,
	customerID, hotelID, roomID uuid.UUID,
	r stay.Range,
	total Money,
	blockID uuid.UUID,
	transactionID *string,
	guestCount int,
	addOns []string,
	now time.Time,
) Reservation {
	return Reservation{
		ID:            id,
		CustomerID:    customerID,
		HotelID:       hotelID,
		RoomID:        roomID,
		Range:         r,
		Status:        StatusCreated,
		Total:         total,
		BlockID:       blockID,
		TransactionID: transactionID,
		GuestCount:    guestCount,
		AddOns:        addOns,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
