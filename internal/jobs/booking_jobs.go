package jobs

import (
	"context"
	"errors"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/utils"
)

const (
	systemActor   = "system"
	expiredReason = "payment window expired"
)

var errJobPanicked = errors.New("job panicked")

// ExpireUnpaidBookings cancels pending bookings whose payment deadline passed
// without a submitted transfer.
func (jr *JobRunner) ExpireUnpaidBookings() {
	jr.runWithRecovery("ExpireUnpaidBookings", jr.expireUnpaid)
}

func (jr *JobRunner) expireUnpaid(ctx context.Context) error {
	ids, err := jr.bookings.ExpireUnpaid(ctx, jr.now().UTC(), expiredReason)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Expired unpaid bookings", "count", len(ids))
	jr.metrics.Transition(string(domain.BookingStatusCancelled), len(ids))

	jr.forEach(ctx, ids, func(b *domain.Booking) {
		jr.notifier.BookingCancelled(ctx, b, systemActor, expiredReason)
	})
	return nil
}

// ActivateStartedBookings moves confirmed bookings to active once the rental starts.
func (jr *JobRunner) ActivateStartedBookings() {
	jr.runWithRecovery("ActivateStartedBookings", jr.activateStarted)
}

func (jr *JobRunner) activateStarted(ctx context.Context) error {
	ids, err := jr.bookings.ActivateStarted(ctx, utils.Today(jr.now()))
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Activated started bookings", "count", len(ids))
	jr.metrics.Transition(string(domain.BookingStatusActive), len(ids))

	jr.forEach(ctx, ids, func(b *domain.Booking) {
		jr.notifier.Publish(ctx, events.BookingActivated, b, systemActor, "")
	})
	return nil
}

// CompleteEndedBookings closes active bookings whose end date has passed.
func (jr *JobRunner) CompleteEndedBookings() {
	jr.runWithRecovery("CompleteEndedBookings", jr.completeEnded)
}

func (jr *JobRunner) completeEnded(ctx context.Context) error {
	ids, err := jr.bookings.CompleteEnded(ctx, utils.Today(jr.now()))
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Completed ended bookings", "count", len(ids))
	jr.metrics.Transition(string(domain.BookingStatusCompleted), len(ids))

	jr.forEach(ctx, ids, func(b *domain.Booking) {
		jr.notifier.Publish(ctx, events.BookingCompleted, b, systemActor, "")
	})
	return nil
}

// forEach reloads each transitioned booking. A failed lookup is logged and
// skipped since the status change itself is already committed.
func (jr *JobRunner) forEach(ctx context.Context, ids []string, fn func(b *domain.Booking)) {
	for _, id := range ids {
		b, err := jr.bookings.GetByID(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "Cannot reload booking after transition", "booking_id", id, "error", err)
			continue
		}
		fn(b)
	}
}
