package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/domain"
)

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2024, 2, 20, 17, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	b := &domain.Booking{
		ID: "b-1", UserID: "u-1", EquipmentID: "e-1",
		Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusPendingVerification,
		TotalAmount: 15000000,
	}

	ev := NewBookingEvent(PaymentSubmitted, b, at)
	assert.Equal(t, "payment.submitted", ev.Type)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.Equal(t, int64(15000000), ev.TotalAmount)
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	msg, err := newMessage(BookingEvent{Type: BookingCreated, BookingID: "b-1", OccurredAt: now}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.NotEmpty(t, msg.MessageId)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "booking.created", decoded["type"])
	assert.Equal(t, "b-1", decoded["booking_id"])
	assert.NotContains(t, decoded, "reason")
}

func TestNewMessage_Unencodable(t *testing.T) {
	_, err := newMessage(map[string]any{"ch": make(chan int)}, time.Now())
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	assert.NoError(t, p.Publish(context.Background(), BookingCreated, BookingEvent{}))
	assert.NoError(t, p.Close())
}
