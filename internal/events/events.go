// Package events publishes booking lifecycle changes to a topic exchange.
package events

import (
	"context"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
)

// Routing keys.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingActivated = "booking.activated"
	BookingCompleted = "booking.completed"
	PaymentSubmitted = "payment.submitted"
	PaymentConfirmed = "payment.confirmed"
	PaymentRejected  = "payment.rejected"
)

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
	Close() error
}

// BookingEvent is the payload of every routing key above.
type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     string               `json:"booking_id"`
	UserID        string               `json:"user_id,omitempty"`
	EquipmentID   string               `json:"equipment_id,omitempty"`
	Status        domain.BookingStatus `json:"status,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
	TotalAmount   int64                `json:"total_amount,omitempty"`
	Reason        string               `json:"reason,omitempty"`
	ActorID       string               `json:"actor_id,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// NewBookingEvent snapshots b under the given routing key.
func NewBookingEvent(key string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          key,
		BookingID:     b.ID,
		UserID:        b.UserID,
		EquipmentID:   b.EquipmentID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		OccurredAt:    at.UTC(),
	}
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, key string, v any) error {
	logger.DebugContext(ctx, "event not published, broker disabled", "key", key)
	return nil
}

func (nopPublisher) Close() error { return nil }
