package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/events"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/storage"
)

type paymentService struct {
	bookingRepo   repository.BookingRepository
	store         storage.StorageInterface
	proofPolicy   storage.ProofPolicy
	notifier      *Notifier
	metrics       *metrics.Metrics
	paymentWindow time.Duration
	now           func() time.Time
}

func NewPaymentService(
	bookingRepo repository.BookingRepository,
	store storage.StorageInterface,
	proofPolicy storage.ProofPolicy,
	notifier *Notifier,
	m *metrics.Metrics,
	paymentWindow time.Duration,
) PaymentService {
	return &paymentService{
		bookingRepo:   bookingRepo,
		store:         store,
		proofPolicy:   proofPolicy,
		notifier:      notifier,
		metrics:       m,
		paymentWindow: paymentWindow,
		now:           time.Now,
	}
}

func (s *paymentService) BankAccounts() []domain.BankAccount {
	accounts := make([]domain.BankAccount, len(domain.BankAccounts))
	copy(accounts, domain.BankAccounts)
	return accounts
}

func (s *paymentService) PaymentPage(ctx context.Context, userID, bookingID string) (*PaymentPage, error) {
	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	return &PaymentPage{
		Booking:      newBookingView(b, s.paymentWindow),
		BankAccounts: s.BankAccounts(),
		AlreadyPaid:  b.PaymentStatus == domain.PaymentStatusCompleted,
	}, nil
}

func validatePaymentInput(b *domain.Booking, in SubmitPaymentInput) error {
	if _, ok := domain.FindBankAccount(in.BankID); !ok {
		return domain.ValidationError{Field: "bank_id", Msg: "please select a destination bank"}
	}
	if strings.TrimSpace(in.SenderName) == "" {
		return domain.ValidationError{Field: "sender_name", Msg: "sender name is required"}
	}
	if strings.TrimSpace(in.SenderBank) == "" {
		return domain.ValidationError{Field: "sender_bank", Msg: "sender bank is required"}
	}
	if in.Amount != b.TotalAmount {
		return domain.AmountMismatchError{Expected: b.TotalAmount, Got: in.Amount}
	}
	return nil
}

func (s *paymentService) SubmitPayment(ctx context.Context, userID, bookingID string, in SubmitPaymentInput) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "paymentService.SubmitPayment", "userID", userID, "bookingID", bookingID, "bank", in.BankID, "amount", in.Amount)

	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err)
		return nil, err
	}
	if b.PaymentStatus.Submitted() {
		logger.ExitMethod(ctx, "paymentService.SubmitPayment", "bookingID", b.ID, "noop", true, "paymentStatus", b.PaymentStatus)
		return b, nil
	}
	if b.Status != domain.BookingStatusPending {
		err := domain.ConflictError{Resource: "booking", Msg: "booking is no longer awaiting payment"}
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err, "status", b.Status)
		return nil, err
	}
	if err := validatePaymentInput(b, in); err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err)
		return nil, err
	}

	sub := domain.PaymentSubmission{
		Method:     domain.PaymentMethodBankTransferPrefix + in.BankID,
		Reference:  uuid.NewString(),
		SenderName: strings.TrimSpace(in.SenderName),
		SenderBank: strings.TrimSpace(in.SenderBank),
		At:         s.now().UTC(),
	}
	updated, err := s.bookingRepo.SubmitPayment(ctx, b.ID, userID, sub)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err)
		return nil, err
	}

	current, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err)
		return nil, err
	}
	if !updated {
		// A concurrent submission won; the booking is returned as it stands.
		if current.PaymentStatus.Submitted() {
			logger.ExitMethod(ctx, "paymentService.SubmitPayment", "bookingID", current.ID, "noop", true)
			return current, nil
		}
		err := domain.ConflictError{Resource: "booking", Msg: "booking is no longer awaiting payment"}
		logger.ExitMethodWithError(ctx, "paymentService.SubmitPayment", err, "status", current.Status)
		return nil, err
	}

	s.metrics.Payment("submitted")
	s.notifier.Publish(ctx, events.PaymentSubmitted, current, userID, "")
	s.notifier.mailCustomer(ctx, current, "payment_submitted", func(email string) error {
		return s.notifier.email.SendPaymentSubmitted(ctx, email, current)
	})
	s.notifier.mailOps(ctx, current)

	logger.ExitMethod(ctx, "paymentService.SubmitPayment", "bookingID", current.ID, "reference", current.PaymentReference)
	return current, nil
}

func (s *paymentService) AttachProof(ctx context.Context, userID, bookingID, filename, contentType string, body io.Reader) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "paymentService.AttachProof", "userID", userID, "bookingID", bookingID, "contentType", contentType)

	b, err := s.bookingRepo.GetForUser(ctx, bookingID, userID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.AttachProof", err)
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled || b.PaymentStatus == domain.PaymentStatusCompleted {
		err := domain.ConflictError{Resource: "booking", Msg: "payment proof can no longer be changed"}
		logger.ExitMethodWithError(ctx, "paymentService.AttachProof", err)
		return nil, err
	}
	if !s.proofPolicy.Allows(contentType) {
		err := domain.ValidationError{Field: "file", Msg: "only JPEG, PNG or PDF files are accepted"}
		logger.ExitMethodWithError(ctx, "paymentService.AttachProof", err)
		return nil, err
	}

	key := storage.ProofKey(b.ID, filename, contentType)
	size, err := s.store.SaveFile(ctx, key, body, s.proofPolicy.MaxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			err = domain.ValidationError{Field: "file", Msg: err.Error()}
		}
		logger.ExitMethodWithError(ctx, "paymentService.AttachProof", err)
		return nil, err
	}
	if err := s.bookingRepo.SetPaymentProof(ctx, b.ID, userID, key); err != nil {
		if delErr := s.store.DeleteFile(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove orphaned proof", "key", key, "error", delErr)
		}
		logger.ExitMethodWithError(ctx, "paymentService.AttachProof", err)
		return nil, err
	}
	if old := b.PaymentProofKey; old != "" && old != key {
		if err := s.store.DeleteFile(ctx, old); err != nil {
			logger.WarnContext(ctx, "Failed to remove replaced proof", "key", old, "error", err)
		}
	}
	b.PaymentProofKey = key

	logger.ExitMethod(ctx, "paymentService.AttachProof", "bookingID", b.ID, "key", key, "size", size)
	return b, nil
}

func (s *paymentService) OpenProof(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.store.ReadFile(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, domain.NotFoundError{Resource: "file", Err: err}
		}
		return nil, err
	}
	return rc, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, operatorID, bookingID string) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "paymentService.ConfirmPayment", "operatorID", operatorID, "bookingID", bookingID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.ConfirmPayment", err)
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentStatusCompleted {
		logger.ExitMethod(ctx, "paymentService.ConfirmPayment", "bookingID", b.ID, "noop", true)
		return b, nil
	}
	if b.PaymentStatus != domain.PaymentStatusPendingVerification || b.Status == domain.BookingStatusCancelled {
		err := domain.ConflictError{Resource: "payment", Msg: "no transfer is awaiting verification"}
		logger.ExitMethodWithError(ctx, "paymentService.ConfirmPayment", err, "status", b.Status, "paymentStatus", b.PaymentStatus)
		return nil, err
	}

	upd := domain.PaymentUpdate{At: s.now().UTC()}
	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, b.ID, domain.PaymentStatusPendingVerification, domain.PaymentStatusCompleted, upd)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.ConfirmPayment", err)
		return nil, err
	}
	if !updated {
		err := domain.ConflictError{Resource: "payment", Msg: "payment was changed, please reload"}
		logger.ExitMethodWithError(ctx, "paymentService.ConfirmPayment", err)
		return nil, err
	}

	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.metrics.Payment("confirmed")
	s.notifier.Publish(ctx, events.PaymentConfirmed, b, operatorID, "")
	s.notifier.mailCustomer(ctx, b, "payment_confirmed", func(email string) error {
		return s.notifier.email.SendPaymentConfirmed(ctx, email, b)
	})

	logger.ExitMethod(ctx, "paymentService.ConfirmPayment", "bookingID", b.ID, "status", b.Status)
	return b, nil
}

func (s *paymentService) RejectPayment(ctx context.Context, operatorID, bookingID, reason string) (*domain.Booking, error) {
	logger.EnterMethod(ctx, "paymentService.RejectPayment", "operatorID", operatorID, "bookingID", bookingID)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		err := domain.ValidationError{Field: "reason", Msg: "a rejection reason is required"}
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err)
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err)
		return nil, err
	}
	if b.PaymentStatus != domain.PaymentStatusPendingVerification {
		err := domain.ConflictError{Resource: "payment", Msg: "no transfer is awaiting verification"}
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err, "paymentStatus", b.PaymentStatus)
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled {
		err := domain.ConflictError{Resource: "booking", Msg: "booking is cancelled"}
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err, "status", b.Status)
		return nil, err
	}

	now := s.now().UTC()
	due := now.Add(s.paymentWindow)
	upd := domain.PaymentUpdate{Reason: reason, At: now, DueAt: &due}
	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, b.ID, domain.PaymentStatusPendingVerification, domain.PaymentStatusUnpaid, upd)
	if err != nil {
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err)
		return nil, err
	}
	if !updated {
		err := domain.ConflictError{Resource: "payment", Msg: "payment was changed, please reload"}
		logger.ExitMethodWithError(ctx, "paymentService.RejectPayment", err)
		return nil, err
	}

	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.metrics.Payment("rejected")
	s.notifier.Publish(ctx, events.PaymentRejected, b, operatorID, reason)
	s.notifier.mailCustomer(ctx, b, "payment_rejected", func(email string) error {
		return s.notifier.email.SendPaymentRejected(ctx, email, b, reason)
	})

	logger.ExitMethod(ctx, "paymentService.RejectPayment", "bookingID", b.ID)
	return b, nil
}

func (s *paymentService) ListPendingVerifications(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.ListByStatus(ctx, "", domain.PaymentStatusPendingVerification)
}
