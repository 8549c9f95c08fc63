package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/domain"
)

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
}

func (r *recordingMailer) send(ctx context.Context, to, subject, body string) error {
	r.sent = append(r.sent, sentMail{to, subject, body})
	return nil
}

func TestEmailService_Messages(t *testing.T) {
	ctx := context.Background()
	rec := &recordingMailer{}
	svc := newEmailService(rec, "https://heavyrent.test/")
	due := time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:           "bk-1",
		Equipment:    excavator(),
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		TotalAmount:  15_000_000,
		PaymentDueAt: &due,
	}

	require.NoError(t, svc.SendBookingCreated(ctx, "budi@example.com", b))
	require.NoError(t, svc.SendPaymentRejected(ctx, "budi@example.com", b, "wrong amount"))
	require.NoError(t, svc.SendSignUpConfirmation(ctx, "budi@example.com", "", "https://heavyrent.test/auth/callback?code=x"))

	require.Len(t, rec.sent, 3)
	created := rec.sent[0]
	assert.Equal(t, "budi@example.com", created.to)
	assert.Contains(t, created.body, "Excavator PC200")
	assert.Contains(t, created.body, "2024-03-01 to 2024-03-05 (5 days)")
	assert.Contains(t, created.body, "Rp 15.000.000")
	assert.Contains(t, created.body, "29 Feb 2024 09:00 UTC")
	assert.Contains(t, created.body, "https://heavyrent.test/booking/confirmation/bk-1")

	assert.Contains(t, rec.sent[1].body, "Reason: wrong amount")
	assert.Contains(t, rec.sent[1].body, "https://heavyrent.test/payment/bk-1")
	assert.Contains(t, rec.sent[2].body, "Hello budi@example.com")
}

func TestLogEmailService(t *testing.T) {
	svc := NewLogEmailService("http://localhost:8080")
	assert.NoError(t, svc.SendPaymentConfirmed(context.Background(), "budi@example.com", &domain.Booking{ID: "bk-1"}))
}
