package gateway

import (
	"context"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra"
	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"
	"hotel-reservations/internal/pkg/errs"
	"hotel-reservations/internal/usecase"

	"github.com/google/uuid"
)

// EventPublisher is the outbound event sink. The kafka publisher and the
// notification recorder both satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// LocalGateway serves the saga's downstream calls from this service's own
// storage and the in-process payment simulator. When a real payment
// provider or a remote availability service arrives, only this type needs
// to change.
type LocalGateway struct {
	customers    *repository.CustomerRepository
	rooms        *repository.RoomRepository
	blocks       *repository.BlockRepository
	transactions *repository.TransactionRepository
	simulator    *PaymentSimulator
	publisher    EventPublisher
	clock        clock.Clock
}

func NewLocalGateway(
	customers *repository.CustomerRepository,
	rooms *repository.RoomRepository,
	blocks *repository.BlockRepository,
	transactions *repository.TransactionRepository,
	simulator *PaymentSimulator,
	publisher EventPublisher,
	clk clock.Clock,
) *LocalGateway {
	return &LocalGateway{
		customers:    customers,
		rooms:        rooms,
		blocks:       blocks,
		transactions: transactions,
		simulator:    simulator,
		publisher:    publisher,
		clock:        clk,
	}
}

var _ usecase.ServiceGateway = (*LocalGateway)(nil)

func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrConflict)
	case infra.IsKind(err, infra.KindInvalidState):
		return errs.Mark(err, errs.ErrInvalidState)
	default:
		return err
	}
}

func (g *LocalGateway) GetCustomer(ctx context.Context, id uuid.UUID) (usecase.CustomerSnapshot, error) {
	c, err := g.customers.FindByID(ctx, id)
	if err != nil {
		return usecase.CustomerSnapshot{}, translate(err)
	}
	if !c.Active {
		return usecase.CustomerSnapshot{}, errs.Mark(
			errs.Newf("customer %s is inactive", id), errs.ErrInvalid)
	}
	return usecase.CustomerSnapshot{ID: c.ID, Email: c.Email, FullName: c.FullName}, nil
}

func (g *LocalGateway) ComputePrice(ctx context.Context, roomType pricing.RoomType, r stay.Range, addOns []string, coupon string) (pricing.Quote, error) {
	return pricing.ComputeQuote(roomType, r, addOns, coupon)
}

func (g *LocalGateway) SearchAvailability(ctx context.Context, hotelID uuid.UUID, r stay.Range, filter usecase.SearchFilter) ([]usecase.RoomCandidate, error) {
	rooms, err := g.rooms.SearchAvailable(ctx, hotelID, r, filter.RoomType, filter.MaxNightly, filter.MinGuests)
	if err != nil {
		return nil, translate(err)
	}

	nights := r.Nights()
	candidates := make([]usecase.RoomCandidate, 0, len(rooms))
	for _, rm := range rooms {
		candidates = append(candidates, usecase.RoomCandidate{
			RoomID:   rm.ID,
			Number:   rm.Number,
			Type:     rm.Type,
			Floor:    rm.Floor,
			Nightly:  rm.BaseNightly,
			Total:    rm.BaseNightly.MulNights(nights),
			Features: rm.Features,
		})
	}
	return candidates, nil
}

func (g *LocalGateway) HoldRoom(ctx context.Context, roomID uuid.UUID, r stay.Range, kind availability.BlockKind, ttl time.Duration) (usecase.HoldReceipt, error) {
	b := availability.NewHold(roomID, r, kind, g.clock.Now(), ttl)
	if err := g.blocks.Hold(ctx, b); err != nil {
		return usecase.HoldReceipt{}, translate(err)
	}
	return usecase.HoldReceipt{BlockID: b.ID, ExpiresAt: b.ExpiresAt}, nil
}

func (g *LocalGateway) ConfirmHold(ctx context.Context, holdID, reservationID uuid.UUID) error {
	if _, err := g.blocks.Confirm(ctx, holdID, reservationID); err != nil {
		return translate(err)
	}
	return nil
}

func (g *LocalGateway) ReleaseHold(ctx context.Context, holdID uuid.UUID) error {
	return translate(g.blocks.Release(ctx, holdID))
}

// ChargePayment runs the simulator and records the outcome, declines
// included, so support can audit every attempt.
func (g *LocalGateway) ChargePayment(ctx context.Context, customerID, reservationID uuid.UUID, amount reservation.Money, method payment.Method) (usecase.ChargeResult, error) {
	tx := g.simulator.Charge(customerID, reservationID, amount, method, g.clock.Now())
	if err := g.transactions.Create(ctx, tx); err != nil {
		return usecase.ChargeResult{}, translate(err)
	}
	return usecase.ChargeResult{
		TransactionID: tx.ID,
		Approved:      tx.Status == payment.StatusApproved,
		Code:          tx.ErrorCode,
		Message:       tx.ErrorMessage,
	}, nil
}

func (g *LocalGateway) ListPaymentsFor(ctx context.Context, reservationID uuid.UUID) ([]payment.Transaction, error) {
	txs, err := g.transactions.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}

func (g *LocalGateway) RefundPayment(ctx context.Context, transactionID string, amount reservation.Money) error {
	original, err := g.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return translate(err)
	}
	if !original.Approved() {
		return errs.Mark(errs.Newf("transaction %s is not a refundable charge", transactionID), errs.ErrInvalidState)
	}
	if amount.GreaterThan(original.Amount) {
		return errs.Mark(errs.New("refund exceeds charged amount"), errs.ErrInvalid)
	}

	refund := g.simulator.Refund(original, amount, g.clock.Now())
	if err := g.transactions.Create(ctx, refund); err != nil {
		return translate(err)
	}
	return nil
}

func (g *LocalGateway) PublishEvent(ctx context.Context, eventType string, payload any) error {
	return g.publisher.Publish(ctx, eventType, payload)
}
