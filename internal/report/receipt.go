// Package report renders booking documents: the customer receipt PDF and the
// operator spreadsheet export.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

const companyName = "PakaryanHeavyRent"

// BookingReceiptPDF renders the booking confirmation as a one page A4 receipt.
func BookingReceiptPDF(b *domain.Booking, customer *domain.Profile, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt "+shortID(b.ID), false)
	pdf.SetCreator(companyName, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, companyName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Booking Receipt")
	pdf.Ln(10)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, safe(value), "", "L", false)
	}

	status := domain.StatusToLabel(b.Status)
	payment := domain.PaymentStatusToLabel(b.PaymentStatus)
	line("Booking ID", "#"+shortID(b.ID))
	line("Booked on", b.CreatedAt.UTC().Format("02 Jan 2006 15:04 MST"))
	line("Status", status.Text)
	line("Payment", payment.Text)
	if b.PaymentReference != "" {
		line("Payment reference", b.PaymentReference)
	}
	pdf.Ln(4)

	if customer != nil {
		line("Customer", customer.FullName)
		if customer.CompanyName != "" {
			line("Company", customer.CompanyName)
		}
	}
	line("Contact phone", b.ContactPhone)
	if b.ProjectName != "" {
		line("Project", b.ProjectName)
	}
	line("Delivery address", b.DeliveryAddress)
	if b.SpecialRequirements != nil {
		line("Special requirements", *b.SpecialRequirements)
	}
	pdf.Ln(4)

	equipment := "-"
	if b.Equipment != nil {
		equipment = strings.TrimSpace(fmt.Sprintf("%s %s %s", b.Equipment.Name, b.Equipment.Brand, b.Equipment.Model))
	}
	days := utils.RentalDays(b.StartDate, b.EndDate)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 8, "Equipment", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Period", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 8, "Days", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 8, "Daily rate", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 8, equipment, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, b.StartDate.Format(utils.DateLayout)+" - "+b.EndDate.Format(utils.DateLayout), "1", 0, "L", false, 0, "")
	pdf.CellFormat(15, 8, fmt.Sprintf("%d", days), "1", 0, "R", false, 0, "")
	pdf.CellFormat(0, 8, utils.FormatRupiah(b.DailyRate), "1", 1, "R", false, 0, "")
	pdf.CellFormat(145, 8, "Delivery", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Free", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(145, 9, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, utils.FormatRupiah(b.TotalAmount), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Generated "+generatedAt.UTC().Format(time.RFC1123)+". Payments are verified manually within 1x24 hours of the transfer.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// shortID is the 8 character booking number shown to customers.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func safe(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}
