package usecase

import (
	"context"

	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

// ReservationQueries covers the read and lifecycle operations outside the
// sagas: lookups, guest-detail edits, check-in and check-out.
type ReservationQueries interface {
	Get(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error)
	Modify(ctx context.Context, id uuid.UUID, in ModifyInput) (reservation.Reservation, error)
	CheckIn(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	CheckOut(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
}

type ReservationUseCase struct {
	reservations ReservationStore
	clock        clock.Clock
}

var _ ReservationQueries = (*ReservationUseCase)(nil)

func NewReservationUseCase(reservations ReservationStore, clk clock.Clock) *ReservationUseCase {
	return &ReservationUseCase{reservations: reservations, clock: clk}
}

func (u *ReservationUseCase) Get(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	res, err := u.reservations.FindByID(ctx, id)
	if err != nil {
		return reservation.Reservation{}, translateRepoErr(err)
	}
	return res, nil
}

func (u *ReservationUseCase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error) {
	list, err := u.reservations.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return list, nil
}

type ModifyInput struct {
	GuestCount *int
	AddOns     *[]string
}

// Modify patches guest details on a reservation that has not started its
// stay. Dates and room are immutable after creation; changing them means
// cancelling and rebooking.
func (u *ReservationUseCase) Modify(ctx context.Context, id uuid.UUID, in ModifyInput) (reservation.Reservation, error) {
	patch := repository.ReservationPatch{GuestCount: in.GuestCount, AddOns: in.AddOns}
	res, err := u.reservations.UpdateFields(ctx, id, patch, u.clock.Now())
	if err != nil {
		return reservation.Reservation{}, translateRepoErr(err)
	}
	return res, nil
}

func (u *ReservationUseCase) CheckIn(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	return u.transition(ctx, id, reservation.StatusCheckedIn)
}

func (u *ReservationUseCase) CheckOut(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	return u.transition(ctx, id, reservation.StatusCheckedOut)
}

func (u *ReservationUseCase) transition(ctx context.Context, id uuid.UUID, next reservation.Status) (reservation.Reservation, error) {
	res, err := u.reservations.SetStatus(ctx, id, next, u.clock.Now())
	if err != nil {
		return reservation.Reservation{}, translateRepoErr(err)
	}
	return res, nil
}
