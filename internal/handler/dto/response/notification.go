package response

import (
	"encoding/json"
	"time"

	"hotel-reservations/internal/infra/repository"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

func FromNotifications(records []repository.NotificationRecord) []*NotificationResponse {
	out := make([]*NotificationResponse, len(records))
	for i, rec := range records {
		out[i] = &NotificationResponse{
			ID:        rec.ID,
			EventType: rec.EventType,
			Payload:   rec.Payload,
			CreatedAt: rec.CreatedAt,
		}
	}
	return out
}
