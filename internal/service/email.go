package service

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/utils"
)

// mailer delivers one plain text message. Providers differ only here.
type mailer interface {
	send(ctx context.Context, to, subject, body string) error
}

type emailService struct {
	mailer    mailer
	publicURL string
}

func newEmailService(m mailer, publicURL string) EmailService {
	return &emailService{mailer: m, publicURL: strings.TrimRight(publicURL, "/")}
}

type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPEmailService(host string, port int, username, password, from, fromName, publicURL string) EmailService {
	return newEmailService(&smtpMailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}, publicURL)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	logger.ExternalServiceCall(ctx, "smtp", "send", "to", to, "subject", subject)
	err := m.dialer.DialAndSend(msg)
	logger.ExternalServiceResult(ctx, "smtp", "send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type logMailer struct{}

// NewLogEmailService only logs messages. Used in development.
func NewLogEmailService(publicURL string) EmailService {
	return newEmailService(logMailer{}, publicURL)
}

func (logMailer) send(ctx context.Context, to, subject, body string) error {
	logger.InfoContext(ctx, "email (not sent)", "to", to, "subject", subject, "body", body)
	return nil
}

func (s *emailService) bookingURL(b *domain.Booking) string {
	return fmt.Sprintf("%s/booking/confirmation/%s", s.publicURL, b.ID)
}

func bookingSummary(b *domain.Booking) string {
	name := b.EquipmentID
	if b.Equipment != nil && b.Equipment.Name != "" {
		name = b.Equipment.Name
	}
	return fmt.Sprintf("Equipment: %s\nPeriod: %s to %s (%d days)\nTotal: %s",
		name,
		b.StartDate.Format(utils.DateLayout),
		b.EndDate.Format(utils.DateLayout),
		utils.RentalDays(b.StartDate, b.EndDate),
		utils.FormatRupiah(b.TotalAmount))
}

const signature = "\n\nBest regards,\nThe PakaryanHeavyRent Team"

func (s *emailService) SendSignUpConfirmation(ctx context.Context, email, name, confirmURL string) error {
	if name == "" {
		name = email
	}
	body := fmt.Sprintf("Hello %s,\n\nPlease confirm your email address to activate your account:\n\n%s", name, confirmURL) + signature
	return s.mailer.send(ctx, email, "Confirm your PakaryanHeavyRent account", body)
}

func (s *emailService) SendBookingCreated(ctx context.Context, email string, b *domain.Booking) error {
	body := "Your booking has been received.\n\n" + bookingSummary(b)
	if b.PaymentDueAt != nil {
		body += fmt.Sprintf("\n\nPlease complete your bank transfer before %s to secure the booking.",
			b.PaymentDueAt.UTC().Format("02 Jan 2006 15:04 MST"))
	}
	body += "\n\n" + s.bookingURL(b) + signature
	return s.mailer.send(ctx, email, "Booking received", body)
}

func (s *emailService) SendPaymentSubmitted(ctx context.Context, email string, b *domain.Booking) error {
	body := fmt.Sprintf("We received your transfer details (reference %s). Our team verifies payments within 1x24 hours.\n\n%s\n\n%s",
		b.PaymentReference, bookingSummary(b), s.bookingURL(b)) + signature
	return s.mailer.send(ctx, email, "Payment submitted for verification", body)
}

func (s *emailService) SendPaymentAwaitingVerification(ctx context.Context, opsEmail string, b *domain.Booking) error {
	body := fmt.Sprintf("Booking %s has a transfer claim to verify.\n\nSender: %s (%s)\nMethod: %s\nReference: %s\n%s",
		b.ID, b.PaymentSenderName, b.PaymentSenderBank, b.PaymentMethod, b.PaymentReference, bookingSummary(b))
	return s.mailer.send(ctx, opsEmail, "Payment awaiting verification", body)
}

func (s *emailService) SendPaymentConfirmed(ctx context.Context, email string, b *domain.Booking) error {
	body := "Your payment has been verified and your booking is confirmed.\n\n" + bookingSummary(b) + "\n\n" + s.bookingURL(b) + signature
	return s.mailer.send(ctx, email, "Payment confirmed", body)
}

func (s *emailService) SendPaymentRejected(ctx context.Context, email string, b *domain.Booking, reason string) error {
	body := fmt.Sprintf("We could not verify your transfer.\n\nReason: %s\n\nPlease submit your payment again:\n%s/payment/%s",
		reason, s.publicURL, b.ID) + signature
	return s.mailer.send(ctx, email, "Payment could not be verified", body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, email string, b *domain.Booking, reason string) error {
	body := "Your booking has been cancelled.\n\n" + bookingSummary(b)
	if reason != "" {
		body += "\n\nReason: " + reason
	}
	return s.mailer.send(ctx, email, "Booking cancelled", body+signature)
}
