package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid              PaymentStatus = "unpaid"
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusCompleted           PaymentStatus = "completed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted},
}

// CanTransitionTo reports whether the booking lifecycle allows s -> next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Holds reports whether a booking in this status reserves its equipment.
func (s BookingStatus) Holds() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusActive
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusUnpaid: {PaymentStatusPendingVerification},
	// Going back to unpaid is the operator rejection edge.
	PaymentStatusPendingVerification: {PaymentStatusCompleted, PaymentStatusUnpaid},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Submitted() bool {
	return s == PaymentStatusPendingVerification || s == PaymentStatusCompleted
}

type Booking struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	EquipmentID string     `json:"equipment_id"`
	Equipment   *Equipment `json:"equipment,omitempty"` // Populated on detail reads
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	// Snapshot of the equipment daily rate at creation. TotalAmount is derived
	// from it once and never recomputed from the live equipment row.
	DailyRate           int64         `json:"daily_rate"`
	TotalAmount         int64         `json:"total_amount"`
	DeliveryAddress     string        `json:"delivery_address"`
	SpecialRequirements *string       `json:"special_requirements,omitempty"`
	ContactPhone        string        `json:"contact_phone"`
	ProjectName         string        `json:"project_name,omitempty"`
	Status              BookingStatus `json:"status"`
	CancelReason        string        `json:"cancel_reason,omitempty"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	PaymentMethod       string        `json:"payment_method,omitempty"`
	PaymentReference    string        `json:"payment_reference,omitempty"`
	PaymentSenderName   string        `json:"payment_sender_name,omitempty"`
	PaymentSenderBank   string        `json:"payment_sender_bank,omitempty"`
	PaymentProofKey     string        `json:"payment_proof_key,omitempty"`
	PaymentRejection    string        `json:"payment_rejection_reason,omitempty"`
	PaymentDueAt        *time.Time    `json:"payment_due_at,omitempty"`
	PaymentSubmittedAt  *time.Time    `json:"payment_submitted_at,omitempty"`
	PaymentConfirmedAt  *time.Time    `json:"payment_confirmed_at,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// PaymentSubmission is what the store writes when a transfer claim is recorded.
type PaymentSubmission struct {
	Method     string
	Reference  string
	SenderName string
	SenderBank string
	At         time.Time
}

// PaymentUpdate carries the side data of an operator payment decision.
type PaymentUpdate struct {
	Reason string     // rejection reason, empty on confirmation
	At     time.Time  // decision time
	DueAt  *time.Time // new payment deadline after a rejection
}

// DashboardStats aggregates a customer's bookings for the dashboard.
type DashboardStats struct {
	TotalBookings   int   `json:"total_bookings"`
	ActiveBookings  int   `json:"active_bookings"`
	PendingBookings int   `json:"pending_bookings"`
	TotalSpent      int64 `json:"total_spent"`
}
