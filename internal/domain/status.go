package domain

// StatusCategory groups statuses for display. Callers map it to colors.
type StatusCategory string

const (
	CategoryPending             StatusCategory = "pending"
	CategoryConfirmed           StatusCategory = "confirmed"
	CategoryActive              StatusCategory = "active"
	CategoryCompleted           StatusCategory = "completed"
	CategoryCancelled           StatusCategory = "cancelled"
	CategoryUnpaid              StatusCategory = "unpaid"
	CategoryPendingVerification StatusCategory = "pending_verification"
)

type StatusLabel struct {
	Text     string         `json:"text"`
	Category StatusCategory `json:"category"`
}

var bookingLabels = map[BookingStatus]StatusLabel{
	BookingStatusPending:   {Text: "Pending", Category: CategoryPending},
	BookingStatusConfirmed: {Text: "Confirmed", Category: CategoryConfirmed},
	BookingStatusActive:    {Text: "Active", Category: CategoryActive},
	BookingStatusCompleted: {Text: "Completed", Category: CategoryCompleted},
	BookingStatusCancelled: {Text: "Cancelled", Category: CategoryCancelled},
}

var paymentLabels = map[PaymentStatus]StatusLabel{
	PaymentStatusUnpaid:              {Text: "Unpaid", Category: CategoryUnpaid},
	PaymentStatusPendingVerification: {Text: "Pending Verification", Category: CategoryPendingVerification},
	PaymentStatusCompleted:           {Text: "Completed", Category: CategoryCompleted},
}

// StatusToLabel is the single lookup used by every surface that shows a booking status.
// Unknown values fall back to the pending category.
func StatusToLabel(s BookingStatus) StatusLabel {
	if l, ok := bookingLabels[s]; ok {
		return l
	}
	return StatusLabel{Text: string(s), Category: CategoryPending}
}

func PaymentStatusToLabel(s PaymentStatus) StatusLabel {
	if l, ok := paymentLabels[s]; ok {
		return l
	}
	return StatusLabel{Text: string(s), Category: CategoryUnpaid}
}
