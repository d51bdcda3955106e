package repository

import (
	"context"
	"time"

	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRecord is a row of published-event history.
type NotificationRecord struct {
	ID         uuid.UUID
	EventType  string
	CustomerID *uuid.UUID
	Payload    []byte
	CreatedAt  time.Time
}

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Append(ctx context.Context, eventType string, customerID *uuid.UUID, payload []byte, now time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (id, event_type, customer_id, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), eventType, customerID, payload, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append notification", err)
	}
	return nil
}

func (r *NotificationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]NotificationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_type, customer_id, payload, created_at FROM notifications WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2`,
		customerID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var result []NotificationRecord
	for rows.Next() {
		var n NotificationRecord
		if err := rows.Scan(&n.ID, &n.EventType, &n.CustomerID, &n.Payload, &n.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notifications", err)
	}
	return result, nil
}
