package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/report"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/utils"
)

type bookingService struct {
	equipmentRepo repository.EquipmentRepository
	bookingRepo   repository.BookingRepository
	profileRepo   repository.ProfileRepository
	notifier      *Notifier
	metrics       *metrics.Metrics
	paymentWindow time.Duration
	now           func() time.Time
}

func NewBookingService(
	equipmentRepo repository.EquipmentRepository,
	bookingRepo repository.BookingRepository,
	profileRepo repository.ProfileRepository,
	notifier *Notifier,
	m *metrics.Metrics,
	paymentWindow time.Duration,
) BookingService {
	return &bookingService{
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		metrics:       m,
		paymentWindow: paymentWindow,
		now:           time.Now,
	}
}

type bookingRequest struct {
	start, end time.Time
	in         CreateBookingInput
}

// validateBookingInput checks fields in form order so the first missing one is reported.
func validateBookingInput(in CreateBookingInput) (*bookingRequest, error) {
	if strings.TrimSpace(in.StartDate) == "" {
		return nil, domain.ValidationError{Field: "start_date", Msg: "start date is required"}
	}
	if strings.TrimSpace(in.EndDate) == "" {
		return nil, domain.ValidationError{Field: "end_date", Msg: "end date is required"}
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, domain.ValidationError{Field: "delivery_address", Msg: "delivery address is required"}
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return nil, domain.ValidationError{Field: "contact_phone", Msg: "contact phone is required"}
	}
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "start_date", Msg: err.Error()}
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "end_date", Msg: err.Error()}
	}
	if !end.After(start) {
		return nil, domain.ValidationError{Field: "end_date", Msg: "end date must be after start date"}
	}
	return &bookingRequest{start: start, end: end, in: in}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, equipmentID string, in CreateBookingInput) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "bookingService.CreateBooking", "userID", userID, "equipmentID", equipmentID, "start", in.StartDate, "end", in.EndDate)

	req, err := validateBookingInput(in)
	if err != nil {
		s.metrics.BookingRejected("validation")
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err)
		return nil, err
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err, "reason", "equipment lookup failed")
		return nil, err
	}
	if !equipment.IsAvailable() {
		s.metrics.BookingRejected("unavailable")
		err := domain.ConflictError{Resource: "equipment", Msg: domain.ErrEquipmentUnavailable.Error(), Err: domain.ErrEquipmentUnavailable}
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err)
		return nil, err
	}

	// The total is priced here from the current daily rate and stored as is.
	quote := utils.CalculateQuote(&req.start, &req.end, equipment.DailyRate)
	now := s.now().UTC()
	due := utils.PaymentDueAt(now, s.paymentWindow)

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		EquipmentID:     equipment.ID,
		Equipment:       equipment,
		StartDate:       req.start,
		EndDate:         req.end,
		DailyRate:       equipment.DailyRate,
		TotalAmount:     quote.TotalAmount,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		ContactPhone:    strings.TrimSpace(in.ContactPhone),
		ProjectName:     strings.TrimSpace(in.ProjectName),
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		PaymentDueAt:    &due,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if sr := strings.TrimSpace(in.SpecialRequirements); sr != "" {
		booking.SpecialRequirements = &sr
	}

	if err := s.bookingRepo.CreateNoOverlap(ctx, booking); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingOverlap):
			s.metrics.BookingRejected("overlap")
		case errors.Is(err, domain.ErrEquipmentUnavailable):
			s.metrics.BookingRejected("unavailable")
		}
		logger.ExitMethodWithError(ctx, "bookingService.CreateBooking", err)
		return nil, err
	}
	s.metrics.BookingCreated()

	s.notifier.Publish(ctx, events.BookingCreated, booking, userID, "")
	s.notifier.mailCustomer(ctx, booking, "booking_created", func(email string) error {
		return s.notifier.email.SendBookingCreated(ctx, email, booking)
	})

	logger.ExitMethod(ctx, "bookingService.CreateBooking", "bookingID", booking.ID, "days", quote.Days, "total", booking.TotalAmount)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*BookingView, error) {
	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	v := newBookingView(b, s.paymentWindow)
	return &v, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string) ([]BookingView, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, newBookingView(&bookings[i], s.paymentWindow))
	}
	return views, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID, reason string) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "bookingService.CancelBooking", "userID", userID, "bookingID", bookingID)

	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.CancelBooking", err)
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		err := domain.ConflictError{Resource: "booking", Msg: "booking can no longer be cancelled"}
		logger.ExitMethodWithError(ctx, "bookingService.CancelBooking", err, "status", b.Status)
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentStatusCompleted {
		err := domain.ConflictError{Resource: "booking", Msg: "paid bookings must be cancelled by our team"}
		logger.ExitMethodWithError(ctx, "bookingService.CancelBooking", err)
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "cancelled by customer"
	}
	updated, err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, domain.BookingStatusCancelled, reason)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.CancelBooking", err)
		return nil, err
	}
	if !updated {
		err := domain.ConflictError{Resource: "booking", Msg: "booking was changed, please reload"}
		logger.ExitMethodWithError(ctx, "bookingService.CancelBooking", err)
		return nil, err
	}

	b, err = s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	s.metrics.Transition(string(domain.BookingStatusCancelled), 1)
	s.notifier.BookingCancelled(ctx, b, userID, reason)

	logger.ExitMethod(ctx, "bookingService.CancelBooking", "bookingID", b.ID)
	return b, nil
}

func (s *bookingService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	logger.EnterMethod(ctx, "bookingService.Dashboard", "userID", userID)

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil && !domain.IsNotFound(err) {
		logger.ExitMethodWithError(ctx, "bookingService.Dashboard", err)
		return nil, err
	}
	views, err := s.ListMyBookings(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "bookingService.Dashboard", err)
		return nil, err
	}

	d := &Dashboard{Profile: profile, Bookings: views, Stats: bookingStats(views)}
	logger.ExitMethod(ctx, "bookingService.Dashboard", "bookings", d.Stats.TotalBookings)
	return d, nil
}

// bookingStats counts every booking; cancelled ones do not add to the amount spent.
func bookingStats(views []BookingView) domain.DashboardStats {
	stats := domain.DashboardStats{TotalBookings: len(views)}
	for _, v := range views {
		switch v.Status {
		case domain.BookingStatusActive:
			stats.ActiveBookings++
		case domain.BookingStatusPending:
			stats.PendingBookings++
		}
		if v.Status != domain.BookingStatusCancelled {
			stats.TotalSpent += v.TotalAmount
		}
	}
	return stats
}

func (s *bookingService) Receipt(ctx context.Context, userID, bookingID string) ([]byte, error) {
	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	pdf, err := report.BookingReceiptPDF(b, profile, s.now().UTC())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render receipt", "booking_id", b.ID, "error", err)
		return nil, err
	}
	return pdf, nil
}
