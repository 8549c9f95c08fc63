package service

import (
	"context"
	"fmt"
	"strings"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/report"
	"heavyrent-backend/internal/repository"
)

type operatorService struct {
	bookingRepo repository.BookingRepository
	notifier    *Notifier
	metrics     *metrics.Metrics
}

func NewOperatorService(bookingRepo repository.BookingRepository, notifier *Notifier, m *metrics.Metrics) OperatorService {
	return &operatorService{bookingRepo: bookingRepo, notifier: notifier, metrics: m}
}

func (s *operatorService) ActivateBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, operatorID, bookingID, domain.BookingStatusActive, "")
}

func (s *operatorService) CompleteBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, operatorID, bookingID, domain.BookingStatusCompleted, "")
}

func (s *operatorService) CancelBooking(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "cancelled by operator"
	}
	return s.transition(ctx, operatorID, bookingID, domain.BookingStatusCancelled, reason)
}

var transitionEvents = map[domain.BookingStatus]string{
	domain.BookingStatusActive:    events.BookingActivated,
	domain.BookingStatusCompleted: events.BookingCompleted,
	domain.BookingStatusCancelled: events.BookingCancelled,
}

func (s *operatorService) transition(ctx context.Context, operatorID, bookingID string, to domain.BookingStatus, reason string) (*domain.Booking, error) {
	method := "operatorService.transition"
	logger.EnterMethod(ctx, method, "operatorID", operatorID, "bookingID", bookingID, "to", to)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError(ctx, method, err)
		return nil, err
	}
	if !b.Status.CanTransitionTo(to) {
		err := domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("cannot move a %s booking to %s", b.Status, to)}
		logger.ExitMethodWithError(ctx, method, err)
		return nil, err
	}
	updated, err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, to, reason)
	if err != nil {
		logger.ExitMethodWithError(ctx, method, err)
		return nil, err
	}
	if !updated {
		err := domain.ConflictError{Resource: "booking", Msg: "booking was changed, please reload"}
		logger.ExitMethodWithError(ctx, method, err)
		return nil, err
	}

	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.metrics.Transition(string(to), 1)
	if to == domain.BookingStatusCancelled {
		s.notifier.BookingCancelled(ctx, b, operatorID, reason)
	} else {
		s.notifier.Publish(ctx, transitionEvents[to], b, operatorID, reason)
	}

	logger.ExitMethod(ctx, method, "bookingID", b.ID, "status", b.Status)
	return b, nil
}

func (s *operatorService) ExportBookings(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]byte, error) {
	logger.EnterMethod(ctx, "operatorService.ExportBookings", "status", status, "paymentStatus", paymentStatus)

	if status != "" && !status.Valid() {
		err := domain.ValidationError{Field: "status", Msg: "unknown booking status"}
		logger.ExitMethodWithError(ctx, "operatorService.ExportBookings", err)
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByStatus(ctx, status, paymentStatus)
	if err != nil {
		logger.ExitMethodWithError(ctx, "operatorService.ExportBookings", err)
		return nil, err
	}
	data, err := report.BookingsXLSX(bookings)
	if err != nil {
		logger.ExitMethodWithError(ctx, "operatorService.ExportBookings", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "operatorService.ExportBookings", "rows", len(bookings))
	return data, nil
}
