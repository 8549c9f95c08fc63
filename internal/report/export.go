package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

var exportHeader = []interface{}{
	"booking_id", "created_at", "user_id", "equipment", "start_date", "end_date", "days",
	"daily_rate", "total_amount", "status", "payment_status", "payment_method",
	"payment_reference", "sender_name", "sender_bank", "payment_due_at", "contact_phone", "delivery_address",
}

// BookingsXLSX writes one row per booking below a header row.
func BookingsXLSX(bookings []domain.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Bookings"); err != nil {
		return nil, err
	}
	sheet = "Bookings"

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, b := range bookings {
		equipment := ""
		if b.Equipment != nil {
			equipment = b.Equipment.Name
		}
		dueAt := ""
		if b.PaymentDueAt != nil {
			dueAt = b.PaymentDueAt.UTC().Format("2006-01-02 15:04")
		}
		row := []interface{}{
			b.ID,
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
			b.UserID,
			equipment,
			b.StartDate.Format(utils.DateLayout),
			b.EndDate.Format(utils.DateLayout),
			utils.RentalDays(b.StartDate, b.EndDate),
			b.DailyRate,
			b.TotalAmount,
			string(b.Status),
			string(b.PaymentStatus),
			b.PaymentMethod,
			b.PaymentReference,
			b.PaymentSenderName,
			b.PaymentSenderBank,
			dueAt,
			b.ContactPhone,
			b.DeliveryAddress,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
