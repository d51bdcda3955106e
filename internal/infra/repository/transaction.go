package repository

import (
	"context"

	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, reservation_id, customer_id, amount_cents, currency, kind, method, status, approval_code, error_code, error_message, parent_id, processed_at`

func scanTransaction(row pgx.Row) (payment.Transaction, error) {
	var (
		t     payment.Transaction
		cents int64
	)
	err := row.Scan(
		&t.ID, &t.ReservationID, &t.CustomerID, &cents, &t.Currency,
		&t.Kind, &t.Method, &t.Status, &t.ApprovalCode,
		&t.ErrorCode, &t.ErrorMessage, &t.ParentID, &t.ProcessedAt,
	)
	if err != nil {
		return payment.Transaction{}, err
	}
	t.Amount = reservation.NewMoney(cents)
	return t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t payment.Transaction) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO transactions (id, reservation_id, customer_id, amount_cents, currency, kind, method, status, approval_code, error_code, error_message, parent_id, processed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.ReservationID, t.CustomerID, t.Amount.Cents(), t.Currency,
		t.Kind, t.Method, t.Status, t.ApprovalCode,
		t.ErrorCode, t.ErrorMessage, t.ParentID, t.ProcessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("duplicate transaction", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (payment.Transaction, error) {
	t, err := scanTransaction(r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Transaction{}, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return payment.Transaction{}, infra.WrapRepoErr("failed to find transaction", err)
	}
	return t, nil
}

// ListByReservation returns transactions oldest first, so the most recent
// approved charge is the last matching element.
func (r *TransactionRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]payment.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE reservation_id = $1 ORDER BY processed_at`,
		reservationID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	defer rows.Close()

	var result []payment.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transactions", err)
	}
	return result, nil
}
