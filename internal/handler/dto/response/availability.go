package response

import (
	"time"

	"hotel-reservations/internal/usecase"

	"github.com/google/uuid"
)

type RoomCandidateResponse struct {
	RoomID       uuid.UUID `json:"roomId"`
	Number       string    `json:"number"`
	Type         string    `json:"type"`
	Floor        int       `json:"floor"`
	NightlyCents int64     `json:"nightlyCents"`
	TotalCents   int64     `json:"totalCents"`
	Features     []string  `json:"features,omitempty"`
}

func FromRoomCandidates(candidates []usecase.RoomCandidate) []*RoomCandidateResponse {
	out := make([]*RoomCandidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = &RoomCandidateResponse{
			RoomID:       c.RoomID,
			Number:       c.Number,
			Type:         string(c.Type),
			Floor:        c.Floor,
			NightlyCents: c.Nightly.Cents(),
			TotalCents:   c.Total.Cents(),
			Features:     c.Features,
		}
	}
	return out
}

type HoldResponse struct {
	BlockID   uuid.UUID  `json:"blockId"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func FromHoldReceipt(receipt usecase.HoldReceipt) *HoldResponse {
	return &HoldResponse{BlockID: receipt.BlockID, ExpiresAt: receipt.ExpiresAt}
}
