package gateway

import (
	"fmt"
	"strings"
	"time"

	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

// Simulator decision rules, mirroring the sandbox behaviour of the real
// payment provider.
const (
	tokenAlwaysApprove = "tok_visa_4242"
	tokenAlwaysDecline = "tok_rechazado"

	// Charges above this amount are declined regardless of token.
	chargeLimitCents = 1_000_000

	codeInsufficientFunds = "ERR_001"
	codeAmountOverLimit   = "ERR_002"
)

// PaymentSimulator stands in for the payment provider. It is deterministic
// on the card token and amount so tests can steer approvals and declines.
type PaymentSimulator struct{}

func NewPaymentSimulator() *PaymentSimulator {
	return &PaymentSimulator{}
}

func paymentID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func (s *PaymentSimulator) Charge(customerID, reservationID uuid.UUID, amount reservation.Money, method payment.Method, now time.Time) payment.Transaction {
	tx := payment.Transaction{
		ID:            paymentID("TX_"),
		ReservationID: &reservationID,
		CustomerID:    customerID,
		Amount:        amount,
		Currency:      "USD",
		Kind:          payment.KindCharge,
		Method:        method.Type,
		ProcessedAt:   now,
	}

	switch {
	case method.Token == tokenAlwaysApprove:
		tx.Status = payment.StatusApproved
		tx.ApprovalCode = paymentID("APR_")
	case method.Token == tokenAlwaysDecline:
		tx.Status = payment.StatusDeclined
		tx.ErrorCode = codeInsufficientFunds
		tx.ErrorMessage = "insufficient funds"
	case amount.Cents() > chargeLimitCents:
		tx.Status = payment.StatusDeclined
		tx.ErrorCode = codeAmountOverLimit
		tx.ErrorMessage = fmt.Sprintf("amount exceeds single-charge limit of %d cents", chargeLimitCents)
	default:
		tx.Status = payment.StatusApproved
		tx.ApprovalCode = paymentID("APR_")
	}
	return tx
}

func (s *PaymentSimulator) Refund(original payment.Transaction, amount reservation.Money, now time.Time) payment.Transaction {
	parent := original.ID
	return payment.Transaction{
		ID:            paymentID("RF_"),
		ReservationID: original.ReservationID,
		CustomerID:    original.CustomerID,
		Amount:        amount,
		Currency:      original.Currency,
		Kind:          payment.KindRefund,
		Method:        original.Method,
		Status:        payment.StatusRefunded,
		ParentID:      &parent,
		ProcessedAt:   now,
	}
}
