package http

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/service"
	"heavyrent-backend/internal/utils"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) SignUp(ctx context.Context, in service.SignUpInput) (*domain.AuthUser, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}
func (m *MockAuthService) ExchangeCodeForSession(ctx context.Context, code string) (*domain.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}
func (m *MockAuthService) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

type MockEquipmentService struct{ mock.Mock }

func (m *MockEquipmentService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentService) SimilarEquipment(ctx context.Context, e *domain.Equipment) []domain.Equipment {
	args := m.Called(ctx, e)
	return args.Get(0).([]domain.Equipment)
}
func (m *MockEquipmentService) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentCategory), args.Error(1)
}
func (m *MockEquipmentService) QuoteEquipment(ctx context.Context, id string, start, end *time.Time) (*domain.Equipment, utils.Quote, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, utils.Quote{}, args.Error(2)
	}
	return args.Get(0).(*domain.Equipment), args.Get(1).(utils.Quote), args.Error(2)
}

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CreateBooking(ctx context.Context, userID, equipmentID string, in service.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, userID, equipmentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*service.BookingView, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingView), args.Error(1)
}
func (m *MockBookingService) ListMyBookings(ctx context.Context, userID string) ([]service.BookingView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]service.BookingView), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Dashboard(ctx context.Context, userID string) (*service.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}
func (m *MockBookingService) Receipt(ctx context.Context, userID, bookingID string) ([]byte, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) BankAccounts() []domain.BankAccount {
	return m.Called().Get(0).([]domain.BankAccount)
}
func (m *MockPaymentService) PaymentPage(ctx context.Context, userID, bookingID string) (*service.PaymentPage, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentPage), args.Error(1)
}
func (m *MockPaymentService) SubmitPayment(ctx context.Context, userID, bookingID string, in service.SubmitPaymentInput) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentService) AttachProof(ctx context.Context, userID, bookingID, filename, contentType string, body io.Reader) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID, filename, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentService) OpenProof(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockPaymentService) ConfirmPayment(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentService) RejectPayment(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentService) ListPendingVerifications(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockOperatorService struct{ mock.Mock }

func (m *MockOperatorService) ActivateBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockOperatorService) CompleteBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockOperatorService) CancelBooking(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, operatorID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockOperatorService) ExportBookings(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]byte, error) {
	args := m.Called(ctx, status, paymentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
