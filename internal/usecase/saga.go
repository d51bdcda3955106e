package usecase

import (
	"context"
	"log/slog"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the payload of reservation.created / .cancelled.
type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	HotelID       uuid.UUID `json:"hotel_id"`
	Total         string    `json:"total"`
}

// ReservationSagas is the transactional booking surface handlers depend on.
type ReservationSagas interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (reservation.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
}

type CreateReservationInput struct {
	CustomerID uuid.UUID
	HotelID    uuid.UUID
	RoomType   pricing.RoomType
	Range      stay.Range
	AddOns     []string
	Coupon     string
	// RoomID pins a specific room; when nil the saga picks the first
	// candidate from the availability search.
	RoomID     *uuid.UUID
	GuestCount int
	Method     payment.Method
}

// Orchestrator drives the creation and cancellation sagas: an ordered
// sequence of fallible steps, each bounded by a timeout, with explicit
// compensations on partial failure. One orchestrator serves many concurrent
// sagas; all per-saga state lives on the stack.
type Orchestrator struct {
	gateway      ServiceGateway
	reservations ReservationStore
	clock        clock.Clock
	logger       *slog.Logger
	holdTTL      time.Duration
	stepTimeout  time.Duration
}

var _ ReservationSagas = (*Orchestrator)(nil)

func NewOrchestrator(
	gateway ServiceGateway,
	reservations ReservationStore,
	clk clock.Clock,
	logger *slog.Logger,
	holdTTL time.Duration,
	stepTimeout time.Duration,
) *Orchestrator {
	return &Orchestrator{
		gateway:      gateway,
		reservations: reservations,
		clock:        clk,
		logger:       logger,
		holdTTL:      holdTTL,
		stepTimeout:  stepTimeout,
	}
}

// step bounds a single outbound call. Downstream failures surface after one
// attempt; retrying a non-idempotent hold or charge risks duplication.
func (o *Orchestrator) step(ctx context.Context, fn func(ctx context.Context) error) error {
	stepCtx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()
	return fn(stepCtx)
}

// CreateReservation runs the creation saga. The only mandatory compensation
// is releasing the hold when the charge is declined: a declined charge must
// never leave an active hold blocking other customers until TTL expiry.
func (o *Orchestrator) CreateReservation(ctx context.Context, in CreateReservationInput) (reservation.Reservation, error) {
	log := o.logger.With("customer_id", in.CustomerID, "hotel_id", in.HotelID, "range", in.Range.String())

	// Step 1: fetch customer. Failure aborts before anything is reserved.
	var cust CustomerSnapshot
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		cust, err = o.gateway.GetCustomer(ctx, in.CustomerID)
		return err
	}); err != nil {
		return reservation.Reservation{}, err
	}

	// Step 2: price quote. Pure and deterministic; nothing to compensate.
	var quote pricing.Quote
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		quote, err = o.gateway.ComputePrice(ctx, in.RoomType, in.Range, in.AddOns, in.Coupon)
		return err
	}); err != nil {
		return reservation.Reservation{}, err
	}

	// Step 3: resolve room. Tie-break is list order.
	roomID, err := o.resolveRoom(ctx, in)
	if err != nil {
		return reservation.Reservation{}, err
	}
	log = log.With("room_id", roomID)

	// Step 4: acquire the hold. Losing the race to another saga is a
	// Conflict; nothing to compensate yet.
	var receipt HoldReceipt
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		receipt, err = o.gateway.HoldRoom(ctx, roomID, in.Range, availability.KindTemporary, o.holdTTL)
		return err
	}); err != nil {
		return reservation.Reservation{}, err
	}
	log = log.With("block_id", receipt.BlockID)

	// Step 5: charge payment. The reservation id is allocated up front so
	// the charge references it.
	reservationID := uuid.New()
	var charge ChargeResult
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		charge, err = o.gateway.ChargePayment(ctx, cust.ID, reservationID, quote.Total, in.Method)
		return err
	}); err != nil {
		o.releaseHold(ctx, receipt.BlockID, log)
		return reservation.Reservation{}, err
	}
	if !charge.Approved {
		log.Warn("payment declined, releasing hold", "code", charge.Code, "message", charge.Message)
		o.releaseHold(ctx, receipt.BlockID, log)
		return reservation.Reservation{}, errs.Mark(errs.Newf("payment declined: %s", charge.Message), errs.ErrDeclined)
	}

	// Step 6: persist the reservation. From here on a failure leaves a
	// taken payment; the sweeper's reconcile pass retries the confirm for
	// stuck CREATED rows, so log loudly and surface the error.
	now := o.clock.Now()
	res := reservation.NewReservation(
		reservationID,
		cust.ID, in.HotelID, roomID,
		in.Range, quote.Total,
		receipt.BlockID, &charge.TransactionID,
		in.GuestCount, in.AddOns,
		now,
	)
	if err := o.reservations.Create(ctx, res); err != nil {
		log.Error("failed to persist reservation after successful charge",
			"reservation_id", reservationID, "transaction_id", charge.TransactionID, "error", err)
		return reservation.Reservation{}, translateRepoErr(err)
	}

	// Step 7: confirm the hold so the sweeper can never expire it.
	if err := o.step(ctx, func(ctx context.Context) error {
		return o.gateway.ConfirmHold(ctx, receipt.BlockID, res.ID)
	}); err != nil {
		log.Error("failed to confirm hold for persisted reservation", "reservation_id", res.ID, "error", err)
		return reservation.Reservation{}, err
	}

	// Step 8: promote the reservation.
	confirmed, err := o.reservations.SetStatus(ctx, res.ID, reservation.StatusConfirmed, o.clock.Now())
	if err != nil {
		log.Error("failed to confirm reservation", "reservation_id", res.ID, "error", err)
		return reservation.Reservation{}, translateRepoErr(err)
	}

	// Step 9: fire-and-forget event.
	o.publish(ctx, EventReservationCreated, confirmed, log)

	log.Info("reservation created", "reservation_id", confirmed.ID, "total", confirmed.Total.String())
	return confirmed, nil
}

func (o *Orchestrator) resolveRoom(ctx context.Context, in CreateReservationInput) (uuid.UUID, error) {
	if in.RoomID != nil {
		return *in.RoomID, nil
	}

	filter := SearchFilter{MinGuests: in.GuestCount}
	if in.RoomType != "" {
		rt := in.RoomType
		filter.RoomType = &rt
	}

	var candidates []RoomCandidate
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		candidates, err = o.gateway.SearchAvailability(ctx, in.HotelID, in.Range, filter)
		return err
	}); err != nil {
		return uuid.Nil, err
	}
	if len(candidates) == 0 {
		return uuid.Nil, errs.Mark(errs.New("no rooms for requested range"), errs.ErrUnavailable)
	}
	return candidates[0].RoomID, nil
}

// releaseHold is the saga's compensating action. Failures are logged but do
// not mask the original error; the hold's TTL is the ultimate backstop.
func (o *Orchestrator) releaseHold(ctx context.Context, blockID uuid.UUID, log *slog.Logger) {
	if err := o.step(ctx, func(ctx context.Context) error {
		return o.gateway.ReleaseHold(ctx, blockID)
	}); err != nil {
		log.Error("compensation failed: could not release hold", "block_id", blockID, "error", err)
	}
}

// CancelReservation runs the cancellation saga: refund the most recent
// approved charge, then transition to CANCELLED. The room hold of a
// confirmed reservation is no longer active, so no lock release is needed.
func (o *Orchestrator) CancelReservation(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	log := o.logger.With("reservation_id", id)

	res, err := o.reservations.FindByID(ctx, id)
	if err != nil {
		return reservation.Reservation{}, translateRepoErr(err)
	}
	if !res.Status.Cancellable() {
		return reservation.Reservation{}, errs.Mark(
			errs.Newf("reservation is %s", res.Status), errs.ErrInvalidState)
	}

	var txs []payment.Transaction
	if err := o.step(ctx, func(ctx context.Context) error {
		var err error
		txs, err = o.gateway.ListPaymentsFor(ctx, res.ID)
		return err
	}); err != nil {
		return reservation.Reservation{}, err
	}

	if charge := lastApprovedCharge(txs); charge != nil {
		if err := o.step(ctx, func(ctx context.Context) error {
			return o.gateway.RefundPayment(ctx, charge.ID, res.Total)
		}); err != nil {
			return reservation.Reservation{}, err
		}
		log.Info("refund issued", "transaction_id", charge.ID, "amount", res.Total.String())
	}

	cancelled, err := o.reservations.SetStatus(ctx, res.ID, reservation.StatusCancelled, o.clock.Now())
	if err != nil {
		return reservation.Reservation{}, translateRepoErr(err)
	}

	o.publish(ctx, EventReservationCancelled, cancelled, log)

	log.Info("reservation cancelled")
	return cancelled, nil
}

func lastApprovedCharge(txs []payment.Transaction) *payment.Transaction {
	for i := len(txs) - 1; i >= 0; i-- {
		if txs[i].Approved() {
			return &txs[i]
		}
	}
	return nil
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, res reservation.Reservation, log *slog.Logger) {
	event := ReservationEvent{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		HotelID:       res.HotelID,
		Total:         res.Total.String(),
	}
	err := o.step(ctx, func(ctx context.Context) error {
		return o.gateway.PublishEvent(ctx, eventType, event)
	})
	if err != nil {
		log.Warn("failed to publish event", "event", eventType, "error", err)
	}
}
