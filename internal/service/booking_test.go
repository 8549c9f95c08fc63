package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/storage"
)

var fixedNow = time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)

const (
	testUserID   = "user-1"
	testWindow   = 24 * time.Hour
	testOpsEmail = "ops@heavyrent.test"
)

type fixture struct {
	equipment *MockEquipmentRepo
	bookings  *MockBookingRepo
	profiles  *MockProfileRepo
	users     *MockAuthUserRepo
	email     *MockEmailService
	publisher *MockPublisher
	store     *MockStorage
	notifier  *Notifier
}

func newFixture() *fixture {
	f := &fixture{
		equipment: new(MockEquipmentRepo),
		bookings:  new(MockBookingRepo),
		profiles:  new(MockProfileRepo),
		users:     new(MockAuthUserRepo),
		email:     new(MockEmailService),
		publisher: new(MockPublisher),
		store:     new(MockStorage),
	}
	f.notifier = NewNotifier(f.users, f.email, f.publisher, metrics.New(), testOpsEmail)
	f.notifier.now = func() time.Time { return fixedNow }
	f.users.On("GetByID", mock.Anything, testUserID).
		Return(&domain.AuthUser{ID: testUserID, Email: "budi@example.com"}, nil).Maybe()
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) bookingService() *bookingService {
	svc := NewBookingService(f.equipment, f.bookings, f.profiles, f.notifier, metrics.New(), testWindow).(*bookingService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (f *fixture) paymentService() *paymentService {
	policy := storage.NewProofPolicy(1, []string{"image/jpeg", "image/png", "application/pdf"})
	svc := NewPaymentService(f.bookings, f.store, policy, f.notifier, metrics.New(), testWindow).(*paymentService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func excavator() *domain.Equipment {
	return &domain.Equipment{
		ID:                 "eq-1",
		Name:               "Excavator PC200",
		Brand:              "Komatsu",
		DailyRate:          3_000_000,
		AvailabilityStatus: domain.AvailabilityAvailable,
	}
}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-05",
		DeliveryAddress: "Jl. Sudirman 1, Jakarta",
		ContactPhone:    "+62 812 0000 0000",
		ProjectName:     "Tower B",
	}
}

func TestBookingService_CreateThenPay(t *testing.T) {
	f := newFixture()
	bookingSvc := f.bookingService()
	paymentSvc := f.paymentService()
	ctx := context.Background()

	f.equipment.On("GetByID", ctx, "eq-1").Return(excavator(), nil)
	var stored *domain.Booking
	f.bookings.On("CreateNoOverlap", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Booking) }).
		Return(nil)
	f.email.On("SendBookingCreated", ctx, "budi@example.com", mock.Anything).Return(nil)

	booking, err := bookingSvc.CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
	require.NoError(t, err)
	require.Same(t, stored, booking)

	assert.Equal(t, int64(15_000_000), booking.TotalAmount)
	assert.Equal(t, int64(3_000_000), booking.DailyRate)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, booking.PaymentStatus)
	assert.Equal(t, testUserID, booking.UserID)
	assert.NotEmpty(t, booking.ID)
	require.NotNil(t, booking.PaymentDueAt)
	assert.Equal(t, fixedNow.Add(testWindow), *booking.PaymentDueAt)
	assert.Equal(t, int64(5), newBookingView(booking, testWindow).Days)

	submitted := *booking
	submitted.PaymentStatus = domain.PaymentStatusPendingVerification
	submitted.PaymentMethod = "bank_transfer_bca"
	submitted.PaymentReference = "ref-1"

	f.bookings.On("GetForUser", ctx, booking.ID, testUserID).Return(booking, nil).Once()
	f.bookings.On("GetForUser", ctx, booking.ID, testUserID).Return(&submitted, nil).Once()
	f.bookings.On("SubmitPayment", ctx, booking.ID, testUserID, mock.MatchedBy(func(sub domain.PaymentSubmission) bool {
		return sub.Method == "bank_transfer_bca" && sub.Reference != "" && sub.SenderName == "Budi" && sub.At.Equal(fixedNow)
	})).Return(true, nil)
	f.email.On("SendPaymentSubmitted", ctx, "budi@example.com", &submitted).Return(nil)
	f.email.On("SendPaymentAwaitingVerification", ctx, testOpsEmail, &submitted).Return(nil)

	paid, err := paymentSvc.SubmitPayment(ctx, testUserID, booking.ID, SubmitPaymentInput{
		BankID:     "bca",
		SenderName: "Budi",
		SenderBank: "BCA",
		Amount:     15_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPendingVerification, paid.PaymentStatus)
	assert.Equal(t, domain.BookingStatusPending, paid.Status)
	assert.Equal(t, int64(15_000_000), paid.TotalAmount)

	f.bookings.AssertExpectations(t)
	f.email.AssertExpectations(t)
	f.publisher.AssertCalled(t, "Publish", ctx, "booking.created", mock.Anything)
	f.publisher.AssertCalled(t, "Publish", ctx, "payment.submitted", mock.Anything)
}

func TestBookingService_CreateBooking_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(in *CreateBookingInput)
		field string
	}{
		{"missing start", func(in *CreateBookingInput) { in.StartDate = "" }, "start_date"},
		{"missing end", func(in *CreateBookingInput) { in.EndDate = " " }, "end_date"},
		{"missing address", func(in *CreateBookingInput) { in.DeliveryAddress = "" }, "delivery_address"},
		{"missing phone", func(in *CreateBookingInput) { in.ContactPhone = "" }, "contact_phone"},
		{"address reported before phone", func(in *CreateBookingInput) { in.DeliveryAddress, in.ContactPhone = "", "" }, "delivery_address"},
		{"same day", func(in *CreateBookingInput) { in.EndDate = in.StartDate }, "end_date"},
		{"end before start", func(in *CreateBookingInput) { in.EndDate = "2024-02-27" }, "end_date"},
		{"bad start format", func(in *CreateBookingInput) { in.StartDate = "01/03/2024" }, "start_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := f.bookingService()
			in := validBookingInput()
			tt.edit(&in)

			res, err := svc.CreateBooking(context.Background(), testUserID, "eq-1", in)
			assert.Nil(t, res)
			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			f.equipment.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.bookings.AssertNotCalled(t, "CreateNoOverlap", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_CreateBooking_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("Equipment unavailable", func(t *testing.T) {
		f := newFixture()
		eq := excavator()
		eq.AvailabilityStatus = domain.AvailabilityUnavailable
		f.equipment.On("GetByID", ctx, "eq-1").Return(eq, nil)

		_, err := f.bookingService().CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
		assert.True(t, domain.IsConflict(err))
		assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
		f.bookings.AssertNotCalled(t, "CreateNoOverlap", mock.Anything, mock.Anything)
	})

	t.Run("Equipment missing", func(t *testing.T) {
		f := newFixture()
		f.equipment.On("GetByID", ctx, "eq-1").Return(nil, domain.NotFoundError{Resource: "equipment"})

		_, err := f.bookingService().CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Overlap", func(t *testing.T) {
		f := newFixture()
		f.equipment.On("GetByID", ctx, "eq-1").Return(excavator(), nil)
		f.bookings.On("CreateNoOverlap", ctx, mock.Anything).
			Return(domain.ConflictError{Resource: "booking", Msg: domain.ErrBookingOverlap.Error(), Err: domain.ErrBookingOverlap})

		res, err := f.bookingService().CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrBookingOverlap)
		f.email.AssertNotCalled(t, "SendBookingCreated", mock.Anything, mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Timeout is retryable", func(t *testing.T) {
		f := newFixture()
		f.equipment.On("GetByID", ctx, "eq-1").Return(excavator(), nil)
		f.bookings.On("CreateNoOverlap", ctx, mock.Anything).
			Return(domain.PersistenceError{Op: "create booking", Err: context.DeadlineExceeded, Retryable: true})

		_, err := f.bookingService().CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
		assert.True(t, domain.IsRetryable(err))
		f.bookings.AssertNumberOfCalls(t, "CreateNoOverlap", 1)
	})
}

func TestBookingService_CreateBooking_EmailFailureIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.equipment.On("GetByID", ctx, "eq-1").Return(excavator(), nil)
	f.bookings.On("CreateNoOverlap", ctx, mock.Anything).Return(nil)
	f.email.On("SendBookingCreated", ctx, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	res, err := f.bookingService().CreateBooking(ctx, testUserID, "eq-1", validBookingInput())
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()
	pending := func() *domain.Booking {
		return &domain.Booking{ID: "bk-1", UserID: testUserID, Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusUnpaid}
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		cancelled := pending()
		cancelled.Status = domain.BookingStatusCancelled
		f.bookings.On("GetForUser", ctx, "bk-1", testUserID).Return(pending(), nil).Once()
		f.bookings.On("UpdateStatus", ctx, "bk-1", domain.BookingStatusPending, domain.BookingStatusCancelled, "changed plans").Return(true, nil)
		f.bookings.On("GetForUser", ctx, "bk-1", testUserID).Return(cancelled, nil).Once()
		f.email.On("SendBookingCancelled", ctx, "budi@example.com", cancelled, "changed plans").Return(nil)

		res, err := f.bookingService().CancelBooking(ctx, testUserID, "bk-1", " changed plans ")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, res.Status)
		f.publisher.AssertCalled(t, "Publish", ctx, "booking.cancelled", mock.Anything)
	})

	t.Run("Paid booking", func(t *testing.T) {
		f := newFixture()
		b := pending()
		b.Status = domain.BookingStatusConfirmed
		b.PaymentStatus = domain.PaymentStatusCompleted
		f.bookings.On("GetForUser", ctx, "bk-1", testUserID).Return(b, nil)

		_, err := f.bookingService().CancelBooking(ctx, testUserID, "bk-1", "")
		assert.True(t, domain.IsConflict(err))
		f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completed booking", func(t *testing.T) {
		f := newFixture()
		b := pending()
		b.Status = domain.BookingStatusCompleted
		f.bookings.On("GetForUser", ctx, "bk-1", testUserID).Return(b, nil)

		_, err := f.bookingService().CancelBooking(ctx, testUserID, "bk-1", "")
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Lost race", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetForUser", ctx, "bk-1", testUserID).Return(pending(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", domain.BookingStatusPending, domain.BookingStatusCancelled, "cancelled by customer").Return(false, nil)

		_, err := f.bookingService().CancelBooking(ctx, testUserID, "bk-1", "")
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Someone else's booking", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetForUser", ctx, "bk-1", "intruder").Return(nil, domain.NotFoundError{Resource: "booking"})

		_, err := f.bookingService().CancelBooking(ctx, "intruder", "bk-1", "")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestBookingService_Dashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.profiles.On("GetByID", ctx, testUserID).Return(nil, domain.NotFoundError{Resource: "profile"})
	f.bookings.On("ListByUser", ctx, testUserID).Return([]domain.Booking{
		{ID: "a", Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusUnpaid, TotalAmount: 1_000_000},
		{ID: "b", Status: domain.BookingStatusActive, PaymentStatus: domain.PaymentStatusCompleted, TotalAmount: 2_000_000},
		{ID: "c", Status: domain.BookingStatusCancelled, PaymentStatus: domain.PaymentStatusUnpaid, TotalAmount: 4_000_000},
		{ID: "d", Status: domain.BookingStatusCompleted, PaymentStatus: domain.PaymentStatusCompleted, TotalAmount: 8_000_000},
	}, nil)

	d, err := f.bookingService().Dashboard(ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, d.Profile)
	assert.Len(t, d.Bookings, 4)
	assert.Equal(t, domain.DashboardStats{
		TotalBookings:   4,
		ActiveBookings:  1,
		PendingBookings: 1,
		TotalSpent:      11_000_000,
	}, d.Stats)
	assert.True(t, d.Bookings[0].AwaitsPayment)
	assert.Equal(t, "Cancelled", d.Bookings[2].StatusLabel.Text)
}

func TestBookingService_Receipt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := &domain.Booking{
		ID:          "0b1c2d3e-aaaa-bbbb-cccc-000000000000",
		UserID:      testUserID,
		Equipment:   excavator(),
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		DailyRate:   3_000_000,
		TotalAmount: 15_000_000,
		Status:      domain.BookingStatusPending,
	}
	f.bookings.On("GetForUser", ctx, b.ID, testUserID).Return(b, nil)
	f.profiles.On("GetByID", ctx, testUserID).Return(&domain.Profile{ID: testUserID, FullName: "Budi"}, nil)

	pdf, err := f.bookingService().Receipt(ctx, testUserID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
