package service

import (
	"context"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/utils"
)

// Notifier fans a booking change out to email and the event bus.
// Delivery problems are logged and never returned to the caller.
type Notifier struct {
	users    repository.AuthUserRepository
	email    EmailService
	events   events.Publisher
	metrics  *metrics.Metrics
	opsEmail string
	now      func() time.Time
}

func NewNotifier(users repository.AuthUserRepository, email EmailService, publisher events.Publisher, m *metrics.Metrics, opsEmail string) *Notifier {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &Notifier{
		users:    users,
		email:    email,
		events:   publisher,
		metrics:  m,
		opsEmail: opsEmail,
		now:      time.Now,
	}
}

func (n *Notifier) Publish(ctx context.Context, key string, b *domain.Booking, actorID, reason string) {
	ev := events.NewBookingEvent(key, b, n.now().UTC())
	ev.ActorID = actorID
	ev.Reason = reason
	if err := n.events.Publish(ctx, key, ev); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "key", key, "booking_id", b.ID, "error", err)
	}
}

// mailCustomer looks up the booking owner's address and hands it to send.
func (n *Notifier) mailCustomer(ctx context.Context, b *domain.Booking, kind string, send func(email string) error) {
	if n.email == nil {
		return
	}
	u, err := n.users.GetByID(ctx, b.UserID)
	if err != nil {
		logger.WarnContext(ctx, "Cannot resolve customer email", "booking_id", b.ID, "kind", kind, "error", err)
		return
	}
	if err := send(u.Email); err != nil {
		logger.WarnContext(ctx, "Failed to send email", "booking_id", b.ID, "kind", kind, "error", err)
	}
}

// BookingCancelled publishes the cancellation and tells the customer why.
func (n *Notifier) BookingCancelled(ctx context.Context, b *domain.Booking, actorID, reason string) {
	n.Publish(ctx, events.BookingCancelled, b, actorID, reason)
	n.mailCustomer(ctx, b, "booking_cancelled", func(email string) error {
		return n.email.SendBookingCancelled(ctx, email, b, reason)
	})
}

func (n *Notifier) mailOps(ctx context.Context, b *domain.Booking) {
	if n.email == nil || n.opsEmail == "" {
		return
	}
	if err := n.email.SendPaymentAwaitingVerification(ctx, n.opsEmail, b); err != nil {
		logger.WarnContext(ctx, "Failed to notify operators", "booking_id", b.ID, "error", err)
	}
}

func newBookingView(b *domain.Booking, window time.Duration) BookingView {
	v := BookingView{
		Booking:      b,
		Days:         utils.RentalDays(b.StartDate, b.EndDate),
		StatusLabel:  domain.StatusToLabel(b.Status),
		PaymentLabel: domain.PaymentStatusToLabel(b.PaymentStatus),
	}
	if b.PaymentDueAt != nil {
		v.PaymentDeadline = *b.PaymentDueAt
	} else {
		v.PaymentDeadline = utils.PaymentDueAt(b.CreatedAt, window)
	}
	v.AwaitsPayment = b.Status == domain.BookingStatusPending && b.PaymentStatus == domain.PaymentStatusUnpaid
	return v
}
