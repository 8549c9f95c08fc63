package http

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/mux"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
)

func (h *Handler) exportBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.operator.ExportBookings(r.Context(),
		domain.BookingStatus(q.Get("status")),
		domain.PaymentStatus(q.Get("payment_status")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	name := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// downloadFile streams a stored payment proof to an operator.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.payments.OpenProof(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	// Determine content type from file extension
	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")

	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Proof download interrupted", "key", key, "error", err)
	}
}
