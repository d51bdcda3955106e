package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the read-only profile snapshot the saga needs. Profile CRUD
// lives in the customer directory service.
type Customer struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Phone     string
	Active    bool
	CreatedAt time.Time
}
