package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"heavyrent-backend/internal/domain"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Search(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentCategory), args.Error(1)
}
func (m *MockEquipmentRepo) GetCategoryByName(ctx context.Context, name string) (*domain.EquipmentCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentCategory), args.Error(1)
}

func (m *MockEquipmentRepo) ListSimilar(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Equipment, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateNoOverlap(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetForUser(ctx context.Context, id, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status, paymentStatus)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) SubmitPayment(ctx context.Context, id, userID string, sub domain.PaymentSubmission) (bool, error) {
	args := m.Called(ctx, id, userID, sub)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, upd domain.PaymentUpdate) (bool, error) {
	args := m.Called(ctx, id, from, to, upd)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) (bool, error) {
	args := m.Called(ctx, id, from, to, reason)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) SetPaymentProof(ctx context.Context, id, userID, key string) error {
	args := m.Called(ctx, id, userID, key)
	return args.Error(0)
}
func (m *MockBookingRepo) ExpireUnpaid(ctx context.Context, now time.Time, reason string) ([]string, error) {
	args := m.Called(ctx, now, reason)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockBookingRepo) ActivateStarted(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockBookingRepo) CompleteEnded(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]string), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockAuthUserRepo
type MockAuthUserRepo struct {
	mock.Mock
}

func (m *MockAuthUserRepo) Create(ctx context.Context, u *domain.AuthUser) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockAuthUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}
func (m *MockAuthUserRepo) GetByID(ctx context.Context, id string) (*domain.AuthUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}
func (m *MockAuthUserRepo) MarkEmailConfirmed(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockAuthUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthCodeRepo
type MockAuthCodeRepo struct {
	mock.Mock
}

func (m *MockAuthCodeRepo) Create(ctx context.Context, code *domain.AuthCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
func (m *MockAuthCodeRepo) Consume(ctx context.Context, code string, now time.Time) (*domain.AuthCode, error) {
	args := m.Called(ctx, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthCode), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSignUpConfirmation(ctx context.Context, email, name, confirmURL string) error {
	args := m.Called(ctx, email, name, confirmURL)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCreated(ctx context.Context, email string, b *domain.Booking) error {
	args := m.Called(ctx, email, b)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentSubmitted(ctx context.Context, email string, b *domain.Booking) error {
	args := m.Called(ctx, email, b)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentAwaitingVerification(ctx context.Context, opsEmail string, b *domain.Booking) error {
	args := m.Called(ctx, opsEmail, b)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentConfirmed(ctx context.Context, email string, b *domain.Booking) error {
	args := m.Called(ctx, email, b)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentRejected(ctx context.Context, email string, b *domain.Booking, reason string) error {
	args := m.Called(ctx, email, b, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email string, b *domain.Booking, reason string) error {
	args := m.Called(ctx, email, b, reason)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(ctx context.Context, key string, reader io.Reader, maxBytes int64) (int64, error) {
	args := m.Called(ctx, key, reader, maxBytes)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) DownloadURL(key string) string {
	return m.Called(key).String(0)
}
