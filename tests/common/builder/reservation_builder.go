//go:build unit || e2e

package builder

import (
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	HotelID       uuid.UUID
	RoomID        uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Status        reservation.Status
	TotalCents    int64
	BlockID       uuid.UUID
	TransactionID *string
	GuestCount    int
	AddOns        []string
	Now           time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	txID := "TX_TESTCHARGE01"
	return &ReservationBuilder{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		HotelID:       uuid.New(),
		RoomID:        uuid.New(),
		CheckIn:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Status:        reservation.StatusConfirmed,
		TotalCents:    12000,
		BlockID:       uuid.New(),
		TransactionID: &txID,
		GuestCount:    2,
		AddOns:        nil,
		Now:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) AsCreated() *ReservationBuilder {
	b.Status = reservation.StatusCreated
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	return b
}

func (b *ReservationBuilder) Range() stay.Range {
	r, err := stay.NewRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return r
}

func (b *ReservationBuilder) Build() reservation.Reservation {
	res := reservation.NewReservation(
		b.ID,
		b.CustomerID, b.HotelID, b.RoomID,
		b.Range(),
		reservation.NewMoney(b.TotalCents),
		b.BlockID, b.TransactionID,
		b.GuestCount, b.AddOns,
		b.Now,
	)
	res.Status = b.Status
	return res
}

func (b *ReservationBuilder) BuildCharge() payment.Transaction {
	id := "TX_TESTCHARGE01"
	if b.TransactionID != nil {
		id = *b.TransactionID
	}
	resID := b.ID
	return payment.Transaction{
		ID:            id,
		ReservationID: &resID,
		CustomerID:    b.CustomerID,
		Amount:        reservation.NewMoney(b.TotalCents),
		Currency:      "USD",
		Kind:          payment.KindCharge,
		Method:        "card",
		Status:        payment.StatusApproved,
		ProcessedAt:   b.Now,
	}
}

func (b *ReservationBuilder) BuildHold(ttl time.Duration) availability.RoomBlock {
	block := availability.NewHold(b.RoomID, b.Range(), availability.KindTemporary, b.Now, ttl)
	block.ID = b.BlockID
	return block
}
