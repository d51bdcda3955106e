package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

// Publisher is the minimal sink the recorder wraps.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Recorder is a publisher decorator that writes every event into the
// notification history table before handing it to the inner publisher. The
// history row is best effort; the event still goes out when the insert
// fails.
type Recorder struct {
	inner         Publisher
	notifications *repository.NotificationRepository
	clock         clock.Clock
	logger        *slog.Logger
}

func NewRecorder(inner Publisher, notifications *repository.NotificationRepository, clk clock.Clock, logger *slog.Logger) *Recorder {
	return &Recorder{inner: inner, notifications: notifications, clock: clk, logger: logger}
}

func (r *Recorder) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := r.notifications.Append(ctx, eventType, customerFrom(body), body, r.clock.Now()); err != nil {
		r.logger.Warn("failed to record notification", "type", eventType, "error", err)
	}
	return r.inner.Publish(ctx, eventType, payload)
}

// customerFrom probes the encoded payload for a customer id so history can
// be filtered per customer. Events without one are recorded unattributed.
func customerFrom(body []byte) *uuid.UUID {
	var probe struct {
		CustomerID uuid.UUID `json:"customer_id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.CustomerID == uuid.Nil {
		return nil
	}
	return &probe.CustomerID
}
