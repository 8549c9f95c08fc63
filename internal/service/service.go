package service

import (
	"context"
	"io"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

type EquipmentService interface {
	ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error)
	// SimilarEquipment suggests other available items from the same category.
	// A failed lookup yields no suggestions rather than an error.
	SimilarEquipment(ctx context.Context, e *domain.Equipment) []domain.Equipment
	// QuoteEquipment prices a prospective range; absent dates quote zero.
	QuoteEquipment(ctx context.Context, id string, start, end *time.Time) (*domain.Equipment, utils.Quote, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID, equipmentID string, in CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*BookingView, error)
	ListMyBookings(ctx context.Context, userID string) ([]BookingView, error)
	CancelBooking(ctx context.Context, userID, bookingID, reason string) (*domain.Booking, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Receipt(ctx context.Context, userID, bookingID string) ([]byte, error)
}

type PaymentService interface {
	BankAccounts() []domain.BankAccount
	PaymentPage(ctx context.Context, userID, bookingID string) (*PaymentPage, error)
	SubmitPayment(ctx context.Context, userID, bookingID string, in SubmitPaymentInput) (*domain.Booking, error)
	AttachProof(ctx context.Context, userID, bookingID, filename, contentType string, body io.Reader) (*domain.Booking, error)
	OpenProof(ctx context.Context, key string) (io.ReadCloser, error)

	// Operator hooks.
	ConfirmPayment(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error)
	RejectPayment(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error)
	ListPendingVerifications(ctx context.Context) ([]domain.Booking, error)
}

type OperatorService interface {
	ActivateBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error)
	ExportBookings(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]byte, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error)
}

// AuthService is the identity provider: sign-up with an emailed confirmation
// code, code exchange, password sign-in and token introspection.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.AuthUser, error)
	ExchangeCodeForSession(ctx context.Context, code string) (*domain.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error)
	// RefreshSession trades a refresh token for a new session.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type EmailService interface {
	SendSignUpConfirmation(ctx context.Context, email, name, confirmURL string) error
	SendBookingCreated(ctx context.Context, email string, b *domain.Booking) error
	SendPaymentSubmitted(ctx context.Context, email string, b *domain.Booking) error
	SendPaymentAwaitingVerification(ctx context.Context, opsEmail string, b *domain.Booking) error
	SendPaymentConfirmed(ctx context.Context, email string, b *domain.Booking) error
	SendPaymentRejected(ctx context.Context, email string, b *domain.Booking, reason string) error
	SendBookingCancelled(ctx context.Context, email string, b *domain.Booking, reason string) error
}

type CreateBookingInput struct {
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialRequirements string `json:"special_requirements"`
	ContactPhone        string `json:"contact_phone"`
	ProjectName         string `json:"project_name"`
}

type SubmitPaymentInput struct {
	BankID     string `json:"bank_id"`
	SenderName string `json:"sender_name"`
	SenderBank string `json:"sender_bank"`
	Amount     int64  `json:"amount"`
}

type ProfileInput struct {
	FullName    string             `json:"full_name"`
	CompanyName string             `json:"company_name"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	AccountType domain.AccountType `json:"account_type"`
}

type SignUpInput struct {
	Email           string             `json:"email"`
	Password        string             `json:"password"`
	ConfirmPassword string             `json:"confirm_password"`
	FullName        string             `json:"full_name"`
	CompanyName     string             `json:"company_name"`
	Phone           string             `json:"phone"`
	AccountType     domain.AccountType `json:"account_type"`
	// Next is the path the confirmation link lands on after the code exchange.
	Next string `json:"next"`
}

// BookingView is a booking with its derived presentation fields.
type BookingView struct {
	*domain.Booking
	Days            int64              `json:"days"`
	StatusLabel     domain.StatusLabel `json:"status_label"`
	PaymentLabel    domain.StatusLabel `json:"payment_label"`
	PaymentDeadline time.Time          `json:"payment_deadline"`
	AwaitsPayment   bool               `json:"awaits_payment"`
}

type Dashboard struct {
	Profile  *domain.Profile       `json:"profile"`
	Bookings []BookingView         `json:"bookings"`
	Stats    domain.DashboardStats `json:"stats"`
}

type PaymentPage struct {
	Booking      BookingView          `json:"booking"`
	BankAccounts []domain.BankAccount `json:"bank_accounts"`
	// AlreadyPaid means the caller should go to the booking confirmation instead.
	AlreadyPaid bool `json:"already_paid"`
}
