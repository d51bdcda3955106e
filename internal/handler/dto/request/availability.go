package request

import (
	"strconv"

	"hotel-reservations/internal/domain/availability"
	"hotel-reservations/internal/domain/pricing"
	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/pkg/errs"
	"hotel-reservations/internal/usecase"
)

// SearchAvailabilityQuery carries the query-string filters of the search
// endpoint. Prices arrive as cents.
type SearchAvailabilityQuery struct {
	HotelID         string `form:"hotel_id" binding:"required"`
	CheckIn         string `form:"check_in" binding:"required"`
	CheckOut        string `form:"check_out" binding:"required"`
	RoomType        string `form:"room_type"`
	MaxNightlyCents string `form:"max_nightly_cents"`
	Guests          int    `form:"guests"`
}

func (q SearchAvailabilityQuery) Filter() (usecase.SearchFilter, error) {
	filter := usecase.SearchFilter{MinGuests: q.Guests}
	if q.RoomType != "" {
		rt := pricing.RoomType(q.RoomType)
		filter.RoomType = &rt
	}
	if q.MaxNightlyCents != "" {
		cents, err := strconv.ParseInt(q.MaxNightlyCents, 10, 64)
		if err != nil {
			return usecase.SearchFilter{}, err
		}
		max, err := reservation.NewMoneyFromCents(cents)
		if err != nil {
			return usecase.SearchFilter{}, err
		}
		filter.MaxNightly = &max
	}
	return filter, nil
}

type CreateBlockRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	// Kind is temporary or maintenance; reservation blocks are created only
	// by the booking saga.
	Kind string `json:"kind,omitempty"`
}

func (r CreateBlockRequest) BlockKind() (availability.BlockKind, error) {
	switch r.Kind {
	case "", string(availability.KindTemporary):
		return availability.KindTemporary, nil
	case string(availability.KindMaintenance):
		return availability.KindMaintenance, nil
	default:
		return "", errs.Newf("unknown block kind %q", r.Kind)
	}
}
