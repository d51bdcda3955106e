package request

import (
	"strings"
	"time"

	"hotel-reservations/internal/domain/payment"
	"hotel-reservations/internal/domain/stay"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type PaymentMethodRequest struct {
	Type  string `json:"type" binding:"required"`
	Token string `json:"token" binding:"required"`
}

type CreateReservationRequest struct {
	HotelID    uuid.UUID            `json:"hotel_id" binding:"required"`
	RoomID     *uuid.UUID           `json:"room_id,omitempty"`
	RoomType   string               `json:"room_type" binding:"required"`
	CheckIn    string               `json:"check_in" binding:"required"`
	CheckOut   string               `json:"check_out" binding:"required"`
	GuestCount int                  `json:"guest_count" binding:"required,min=1"`
	AddOns     []string             `json:"add_ons,omitempty"`
	Coupon     *string              `json:"coupon,omitempty"`
	Payment    PaymentMethodRequest `json:"payment" binding:"required"`
}

func (r CreateReservationRequest) StayRange() (stay.Range, error) {
	return ParseStayRange(r.CheckIn, r.CheckOut)
}

func (r CreateReservationRequest) GetCoupon() string {
	if r.Coupon == nil {
		return ""
	}
	return strings.TrimSpace(*r.Coupon)
}

func (r CreateReservationRequest) Method() payment.Method {
	return payment.Method{Type: r.Payment.Type, Token: r.Payment.Token}
}

type ModifyReservationRequest struct {
	GuestCount *int      `json:"guest_count,omitempty" binding:"omitempty,min=1"`
	AddOns     *[]string `json:"add_ons,omitempty"`
}

// ParseStayRange turns two date strings into a validated half-open range.
func ParseStayRange(checkIn, checkOut string) (stay.Range, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return stay.Range{}, err
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return stay.Range{}, err
	}
	return stay.NewRange(in, out)
}
