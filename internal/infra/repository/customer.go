package repository

import (
	"context"

	"hotel-reservations/internal/domain/customer"
	"hotel-reservations/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (customer.Customer, error) {
	var c customer.Customer
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, phone, active, created_at FROM customers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Active, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return customer.Customer{}, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return customer.Customer{}, infra.WrapRepoErr("failed to find customer", err)
	}
	return c, nil
}
