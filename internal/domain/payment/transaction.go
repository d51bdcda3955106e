package payment

import (
	"time"

	"hotel-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCharge Kind = "charge"
	KindRefund Kind = "refund"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusRefunded Status = "refunded"
)

type Method struct {
	Type  string
	Token string
}

// Transaction is the payment gateway's record of a charge or refund.
// Refunds reference the original charge through ParentID.
type Transaction struct {
	ID            string
	ReservationID *uuid.UUID
	CustomerID    uuid.UUID
	Amount        reservation.Money
	Currency      string
	Kind          Kind
	Method        string
	Status        Status
	ApprovalCode  string
	ErrorCode     string
	ErrorMessage  string
	ParentID      *string
	ProcessedAt   time.Time
}

func (t Transaction) Approved() bool {
	return t.Kind == KindCharge && t.Status == StatusApproved
}
