package response

import (
	"time"

	"hotel-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customerId"`
	HotelID       uuid.UUID `json:"hotelId"`
	RoomID        uuid.UUID `json:"roomId"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"totalCents"`
	Total         string    `json:"total"`
	GuestCount    int       `json:"guestCount"`
	AddOns        []string  `json:"addOns,omitempty"`
	TransactionID *string   `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

func FromReservation(res reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            res.ID,
		CustomerID:    res.CustomerID,
		HotelID:       res.HotelID,
		RoomID:        res.RoomID,
		CheckIn:       res.Range.CheckIn().Format(dateLayout),
		CheckOut:      res.Range.CheckOut().Format(dateLayout),
		Nights:        res.Range.Nights(),
		Status:        res.Status.String(),
		TotalCents:    res.Total.Cents(),
		Total:         res.Total.String(),
		GuestCount:    res.GuestCount,
		AddOns:        res.AddOns,
		TransactionID: res.TransactionID,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}

func FromReservations(list []reservation.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, len(list))
	for i, res := range list {
		out[i] = FromReservation(res)
	}
	return out
}
