package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"heavyrent-backend/internal/service"
)

// paymentPage sends already settled bookings to their confirmation.
func (h *Handler) paymentPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]
	page, err := h.payments.PaymentPage(r.Context(), CurrentUser(r.Context()).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if page.AlreadyPaid {
		http.Redirect(w, r, "/booking/confirmation/"+id, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitPaymentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.payments.SubmitPayment(r.Context(), CurrentUser(r.Context()).ID, mux.Vars(r)["bookingId"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"booking":     b,
		"redirect_to": "/payment/confirmation/" + b.ID,
	})
}

// uploadProof takes the raw file as the body; the name comes from ?filename=.
func (h *Handler) uploadProof(w http.ResponseWriter, r *http.Request) {
	b, err := h.payments.AttachProof(r.Context(),
		CurrentUser(r.Context()).ID,
		mux.Vars(r)["bookingId"],
		r.URL.Query().Get("filename"),
		r.Header.Get("Content-Type"),
		r.Body,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": b})
}

func (h *Handler) paymentConfirmation(w http.ResponseWriter, r *http.Request) {
	v, err := h.bookings.GetBooking(r.Context(), CurrentUser(r.Context()).ID, mux.Vars(r)["bookingId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"booking": v,
		"message": "Your transfer is being verified. This usually takes 1x24 hours.",
	})
}
