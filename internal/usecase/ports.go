package usecase

import (
	"context"
	"time"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/infra/repository"

	"github.com/google/uuid"
)

// CustomerSnapshot is the transient profile view a saga holds while it runs.
type CustomerSnapshot struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

type SearchFilter struct {
	RoomType   *pricing.RoomType
	MaxNightly *reservation.Money
	MinGuests  int
}

type RoomCandidate struct {
	RoomID   uuid.UUID
	Number   string
	Type     pricing.RoomType
	Floor    int
	Nightly  reservation.Money
	Total    reservation.Money
	Features []string
}

type HoldReceipt struct {
	BlockID   uuid.UUID
	ExpiresAt *time.Time
}

type ChargeResult struct {
	TransactionID string
	Approved      bool
	Code          string
	Message       string
}

// ServiceGateway abstracts calls to the customer, pricing, availability,
// payment and notification services. The orchestrator depends on these
// capabilities, never on concrete transport. Implementations translate
// their own failures into the errs taxonomy.
type ServiceGateway interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (CustomerSnapshot, error)
	ComputePrice(ctx context.Context, roomType pricing.RoomType, r stay.Range, addOns []string, coupon string) (pricing.Quote, error)
	SearchAvailability(ctx context.Context, hotelID uuid.UUID, r stay.Range, filter SearchFilter) ([]RoomCandidate, error)
	HoldRoom(ctx context.Context, roomID uuid.UUID, r stay.Range, kind availability.BlockKind, ttl time.Duration) (HoldReceipt, error)
	ConfirmHold(ctx context.Context, holdID, reservationID uuid.UUID) error
	ReleaseHold(ctx context.Context, holdID uuid.UUID) error
	// ChargePayment takes the reservation id the saga pre-allocated so the
	// charge stays traceable even if a later step fails.
	ChargePayment(ctx context.Context, customerID, reservationID uuid.UUID, amount reservation.Money, method payment.Method) (ChargeResult, error)
	ListPaymentsFor(ctx context.Context, reservationID uuid.UUID) ([]payment.Transaction, error)
	RefundPayment(ctx context.Context, transactionID string, amount reservation.Money) error
	// PublishEvent is fire-and-forget: callers log failures and move on.
	PublishEvent(ctx context.Context, eventType string, payload any) error
}

// ReservationStore owns reservation rows; the orchestrator never mutates
// one except through these operations.
type ReservationStore interface {
	Create(ctx context.Context, res reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, next reservation.Status, now time.Time) (reservation.Reservation, error)
	UpdateFields(ctx context.Context, id uuid.UUID, patch repository.ReservationPatch, now time.Time) (reservation.Reservation, error)
	ListStuckCreated(ctx context.Context, cutoff time.Time, limit int) ([]reservation.Reservation, error)
}
