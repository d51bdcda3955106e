//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/errs"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetCustomer(ctx context.Context, id uuid.UUID) (usecase.CustomerSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(usecase.CustomerSnapshot), args.Error(1)
}

func (m *MockGateway) ComputePrice(ctx context.Context, roomType pricing.RoomType, r stay.Range, addOns []string, coupon string) (pricing.Quote, error) {
	args := m.Called(ctx, roomType, r, addOns, coupon)
	return args.Get(0).(pricing.Quote), args.Error(1)
}

func (m *MockGateway) SearchAvailability(ctx context.Context, hotelID uuid.UUID, r stay.Range, filter usecase.SearchFilter) ([]usecase.RoomCandidate, error) {
	args := m.Called(ctx, hotelID, r, filter)
	return args.Get(0).([]usecase.RoomCandidate), args.Error(1)
}

func (m *MockGateway) HoldRoom(ctx context.Context, roomID uuid.UUID, r stay.Range, kind availability.BlockKind, ttl time.Duration) (usecase.HoldReceipt, error) {
	args := m.Called(ctx, roomID, r, kind, ttl)
	return args.Get(0).(usecase.HoldReceipt), args.Error(1)
}

func (m *MockGateway) ConfirmHold(ctx context.Context, holdID, reservationID uuid.UUID) error {
	args := m.Called(ctx, holdID, reservationID)
	return args.Error(0)
}

func (m *MockGateway) ReleaseHold(ctx context.Context, holdID uuid.UUID) error {
	args := m.Called(ctx, holdID)
	return args.Error(0)
}

func (m *MockGateway) ChargePayment(ctx context.Context, customerID, reservationID uuid.UUID, amount reservation.Money, method payment.Method) (usecase.ChargeResult, error) {
	args := m.Called(ctx, customerID, reservationID, amount, method)
	return args.Get(0).(usecase.ChargeResult), args.Error(1)
}

func (m *MockGateway) ListPaymentsFor(ctx context.Context, reservationID uuid.UUID) ([]payment.Transaction, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]payment.Transaction), args.Error(1)
}

func (m *MockGateway) RefundPayment(ctx context.Context, transactionID string, amount reservation.Money) error {
	args := m.Called(ctx, transactionID, amount)
	return args.Error(0)
}

func (m *MockGateway) PublishEvent(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, res reservation.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockStore) FindByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockStore) SetStatus(ctx context.Context, id uuid.UUID, next reservation.Status, now time.Time) (reservation.Reservation, error) {
	args := m.Called(ctx, id, next, now)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockStore) UpdateFields(ctx context.Context, id uuid.UUID, patch repository.ReservationPatch, now time.Time) (reservation.Reservation, error) {
	args := m.Called(ctx, id, patch, now)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockStore) ListStuckCreated(ctx context.Context, cutoff time.Time, limit int) ([]reservation.Reservation, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func newOrchestrator(gw *MockGateway, store *MockStore, now time.Time) *usecase.Orchestrator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewOrchestrator(gw, store, clock.NewMockClock(now), logger, 15*time.Minute, 5*time.Second)
}

func testQuote(totalCents int64) pricing.Quote {
	return pricing.Quote{
		Nightly:  reservation.NewMoney(totalCents / 3),
		Nights:   3,
		Subtotal: reservation.NewMoney(totalCents),
		Total:    reservation.NewMoney(totalCents),
		Currency: "USD",
	}
}

func TestCreateReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := builder.NewReservationBuilder()
	method := payment.Method{Type: "card", Token: "tok_visa_4242"}

	input := usecase.CreateReservationInput{
		CustomerID: b.CustomerID,
		HotelID:    b.HotelID,
		Range:      b.Range(),
		RoomID:     &b.RoomID,
		GuestCount: 2,
		Method:     method,
	}

	t.Run("happy path confirms hold and reservation", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{ID: b.CustomerID, Email: "guest@example.com"}, nil)
		gw.On("ComputePrice", mock.Anything, mock.Anything, b.Range(), mock.Anything, "").
			Return(testQuote(12000), nil)
		gw.On("HoldRoom", mock.Anything, b.RoomID, b.Range(), availability.KindTemporary, 15*time.Minute).
			Return(usecase.HoldReceipt{BlockID: b.BlockID}, nil)
		gw.On("ChargePayment", mock.Anything, b.CustomerID, mock.Anything, reservation.NewMoney(12000), method).
			Return(usecase.ChargeResult{TransactionID: "TX_OK", Approved: true}, nil)
		gw.On("ConfirmHold", mock.Anything, b.BlockID, mock.Anything).Return(nil)
		var publishDeadline bool
		gw.On("PublishEvent", mock.Anything, usecase.EventReservationCreated, mock.Anything).
			Run(func(args mock.Arguments) {
				_, publishDeadline = args.Get(0).(context.Context).Deadline()
			}).
			Return(nil)

		var persisted reservation.Reservation
		store.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(reservation.Reservation)
			}).
			Return(nil)
		store.On("SetStatus", mock.Anything, mock.Anything, reservation.StatusConfirmed, now).
			Return(b.Build(), nil)

		res, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, res.Status)

		// The charge references the reservation that was later persisted.
		require.NotEqual(t, uuid.Nil, persisted.ID)
		gw.AssertCalled(t, "ChargePayment", mock.Anything, b.CustomerID, persisted.ID, reservation.NewMoney(12000), method)
		gw.AssertCalled(t, "ConfirmHold", mock.Anything, b.BlockID, persisted.ID)
		gw.AssertNotCalled(t, "ReleaseHold", mock.Anything, mock.Anything)
		assert.Equal(t, "TX_OK", *persisted.TransactionID)
		assert.True(t, publishDeadline, "publish runs under the per-call timeout")
	})

	t.Run("unknown customer aborts before any hold", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		notFound := errs.Mark(errs.New("customer not found"), errs.ErrNotFound)
		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{}, notFound)

		_, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), input)
		assert.True(t, errors.Is(err, errs.ErrNotFound))
		gw.AssertNotCalled(t, "HoldRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("declined payment releases the hold", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{ID: b.CustomerID}, nil)
		gw.On("ComputePrice", mock.Anything, mock.Anything, b.Range(), mock.Anything, "").
			Return(testQuote(12000), nil)
		gw.On("HoldRoom", mock.Anything, b.RoomID, b.Range(), availability.KindTemporary, 15*time.Minute).
			Return(usecase.HoldReceipt{BlockID: b.BlockID}, nil)
		gw.On("ChargePayment", mock.Anything, b.CustomerID, mock.Anything, reservation.NewMoney(12000), method).
			Return(usecase.ChargeResult{TransactionID: "TX_NO", Approved: false, Code: "ERR_001", Message: "insufficient funds"}, nil)
		gw.On("ReleaseHold", mock.Anything, b.BlockID).Return(nil)

		_, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), input)
		assert.True(t, errors.Is(err, errs.ErrDeclined))
		gw.AssertNumberOfCalls(t, "ReleaseHold", 1)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("charge failure releases the hold", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{ID: b.CustomerID}, nil)
		gw.On("ComputePrice", mock.Anything, mock.Anything, b.Range(), mock.Anything, "").
			Return(testQuote(12000), nil)
		gw.On("HoldRoom", mock.Anything, b.RoomID, b.Range(), availability.KindTemporary, 15*time.Minute).
			Return(usecase.HoldReceipt{BlockID: b.BlockID}, nil)
		gw.On("ChargePayment", mock.Anything, b.CustomerID, mock.Anything, reservation.NewMoney(12000), method).
			Return(usecase.ChargeResult{}, assert.AnError)
		gw.On("ReleaseHold", mock.Anything, b.BlockID).Return(nil)

		_, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), input)
		assert.Error(t, err)
		gw.AssertNumberOfCalls(t, "ReleaseHold", 1)
	})

	t.Run("hold conflict surfaces without compensation", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{ID: b.CustomerID}, nil)
		gw.On("ComputePrice", mock.Anything, mock.Anything, b.Range(), mock.Anything, "").
			Return(testQuote(12000), nil)
		gw.On("HoldRoom", mock.Anything, b.RoomID, b.Range(), availability.KindTemporary, 15*time.Minute).
			Return(usecase.HoldReceipt{}, errs.Mark(errs.New("room already blocked"), errs.ErrConflict))

		_, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), input)
		assert.True(t, errors.Is(err, errs.ErrConflict))
		gw.AssertNotCalled(t, "ChargePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		gw.AssertNotCalled(t, "ReleaseHold", mock.Anything, mock.Anything)
	})

	t.Run("no candidates yields unavailable", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		openInput := input
		openInput.RoomID = nil
		openInput.RoomType = pricing.RoomStandard

		gw.On("GetCustomer", mock.Anything, b.CustomerID).
			Return(usecase.CustomerSnapshot{ID: b.CustomerID}, nil)
		gw.On("ComputePrice", mock.Anything, pricing.RoomStandard, b.Range(), mock.Anything, "").
			Return(testQuote(12000), nil)
		gw.On("SearchAvailability", mock.Anything, b.HotelID, b.Range(), mock.Anything).
			Return([]usecase.RoomCandidate{}, nil)

		_, err := newOrchestrator(gw, store, now).CreateReservation(context.Background(), openInput)
		assert.True(t, errors.Is(err, errs.ErrUnavailable))
		gw.AssertNotCalled(t, "HoldRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelReservation(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := builder.NewReservationBuilder()

	t.Run("refunds the charge exactly once", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		confirmed := b.Build()
		charge := b.BuildCharge()

		store.On("FindByID", mock.Anything, confirmed.ID).Return(confirmed, nil)
		gw.On("ListPaymentsFor", mock.Anything, confirmed.ID).
			Return([]payment.Transaction{charge}, nil)
		gw.On("RefundPayment", mock.Anything, charge.ID, reservation.NewMoney(12000)).Return(nil)

		cancelled := confirmed
		cancelled.Status = reservation.StatusCancelled
		store.On("SetStatus", mock.Anything, confirmed.ID, reservation.StatusCancelled, now).
			Return(cancelled, nil)
		gw.On("PublishEvent", mock.Anything, usecase.EventReservationCancelled, mock.Anything).Return(nil)

		res, err := newOrchestrator(gw, store, now).CancelReservation(context.Background(), confirmed.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled, res.Status)
		gw.AssertNumberOfCalls(t, "RefundPayment", 1)
	})

	t.Run("skips refund when no approved charge exists", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		confirmed := b.Build()
		store.On("FindByID", mock.Anything, confirmed.ID).Return(confirmed, nil)
		gw.On("ListPaymentsFor", mock.Anything, confirmed.ID).
			Return([]payment.Transaction{}, nil)

		cancelled := confirmed
		cancelled.Status = reservation.StatusCancelled
		store.On("SetStatus", mock.Anything, confirmed.ID, reservation.StatusCancelled, now).
			Return(cancelled, nil)
		gw.On("PublishEvent", mock.Anything, usecase.EventReservationCancelled, mock.Anything).Return(nil)

		_, err := newOrchestrator(gw, store, now).CancelReservation(context.Background(), confirmed.ID)
		require.NoError(t, err)
		gw.AssertNotCalled(t, "RefundPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled is invalid state", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		done := b.AsCancelled().Build()
		store.On("FindByID", mock.Anything, done.ID).Return(done, nil)

		_, err := newOrchestrator(gw, store, now).CancelReservation(context.Background(), done.ID)
		assert.True(t, errors.Is(err, errs.ErrInvalidState))
		gw.AssertNotCalled(t, "ListPaymentsFor", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund failure leaves reservation untouched", func(t *testing.T) {
		gw := new(MockGateway)
		store := new(MockStore)

		bb := builder.NewReservationBuilder()
		confirmed := bb.Build()
		charge := bb.BuildCharge()

		store.On("FindByID", mock.Anything, confirmed.ID).Return(confirmed, nil)
		gw.On("ListPaymentsFor", mock.Anything, confirmed.ID).
			Return([]payment.Transaction{charge}, nil)
		gw.On("RefundPayment", mock.Anything, charge.ID, reservation.NewMoney(12000)).
			Return(assert.AnError)

		_, err := newOrchestrator(gw, store, now).CancelReservation(context.Background(), confirmed.ID)
		assert.Error(t, err)
		store.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
