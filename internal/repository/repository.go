package repository

import (
	"context"
	"time"

	"heavyrent-backend/internal/domain"
)

type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Search(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.EquipmentCategory, error)
	// ListSimilar returns available items in the category, newest first, excluding excludeID.
	ListSimilar(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Equipment, error)
}

type BookingRepository interface {
	// CreateNoOverlap inserts the booking unless the equipment is unavailable
	// or already held for an overlapping date range.
	CreateNoOverlap(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// GetForUser returns NotFound for bookings owned by someone else.
	GetForUser(ctx context.Context, id, userID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	// ListByStatus filters on either status; empty values match everything.
	ListByStatus(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]domain.Booking, error)

	// Conditional updates report false when the row was not in the expected state.
	SubmitPayment(ctx context.Context, id, userID string, sub domain.PaymentSubmission) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, upd domain.PaymentUpdate) (bool, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) (bool, error)
	SetPaymentProof(ctx context.Context, id, userID, key string) error

	// Batch transitions for the scheduler. They return the ids they touched.
	ExpireUnpaid(ctx context.Context, now time.Time, reason string) ([]string, error)
	ActivateStarted(ctx context.Context, today time.Time) ([]string, error)
	CompleteEnded(ctx context.Context, today time.Time) ([]string, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type AuthUserRepository interface {
	Create(ctx context.Context, u *domain.AuthUser) error
	GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error)
	GetByID(ctx context.Context, id string) (*domain.AuthUser, error)
	MarkEmailConfirmed(ctx context.Context, id string, at time.Time) error
	// Delete removes the account along with its profile and auth codes.
	Delete(ctx context.Context, id string) error
}

type AuthCodeRepository interface {
	Create(ctx context.Context, code *domain.AuthCode) error
	// Consume marks an unexpired, unused code as used and returns it.
	Consume(ctx context.Context, code string, now time.Time) (*domain.AuthCode, error)
}
