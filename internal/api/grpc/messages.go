package grpc

import (
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

type BookingRequest struct {
	BookingID string `json:"booking_id"`
}

type ReasonRequest struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
}

type ListPendingVerificationsRequest struct{}

type Booking struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	EquipmentID      string `json:"equipment_id"`
	EquipmentName    string `json:"equipment_name,omitempty"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Days             int64  `json:"days"`
	TotalAmount      int64  `json:"total_amount"`
	Status           string `json:"status"`
	StatusLabel      string `json:"status_label"`
	PaymentStatus    string `json:"payment_status"`
	PaymentLabel     string `json:"payment_label"`
	PaymentMethod    string `json:"payment_method,omitempty"`
	PaymentReference string `json:"payment_reference,omitempty"`
	SenderName       string `json:"sender_name,omitempty"`
	SenderBank       string `json:"sender_bank,omitempty"`
	ProofURL         string `json:"proof_url,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	SubmittedAt      string `json:"submitted_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type BookingReply struct {
	Booking *Booking `json:"booking"`
}

type BookingListReply struct {
	Bookings []*Booking `json:"bookings"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// MapDomainBookingToMessage flattens a booking for operator tooling.
func MapDomainBookingToMessage(b *domain.Booking, proofURL func(key string) string) *Booking {
	if b == nil {
		return nil
	}
	m := &Booking{
		ID:               b.ID,
		UserID:           b.UserID,
		EquipmentID:      b.EquipmentID,
		StartDate:        b.StartDate.Format(utils.DateLayout),
		EndDate:          b.EndDate.Format(utils.DateLayout),
		Days:             utils.RentalDays(b.StartDate, b.EndDate),
		TotalAmount:      b.TotalAmount,
		Status:           string(b.Status),
		StatusLabel:      domain.StatusToLabel(b.Status).Text,
		PaymentStatus:    string(b.PaymentStatus),
		PaymentLabel:     domain.PaymentStatusToLabel(b.PaymentStatus).Text,
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		SenderName:       b.PaymentSenderName,
		SenderBank:       b.PaymentSenderBank,
		RejectionReason:  b.PaymentRejection,
		SubmittedAt:      formatTime(b.PaymentSubmittedAt),
		CreatedAt:        formatTime(&b.CreatedAt),
	}
	if b.Equipment != nil {
		m.EquipmentName = b.Equipment.Name
	}
	if b.PaymentProofKey != "" && proofURL != nil {
		m.ProofURL = proofURL(b.PaymentProofKey)
	}
	return m
}
