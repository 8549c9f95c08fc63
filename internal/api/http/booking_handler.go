package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"heavyrent-backend/internal/service"
	"heavyrent-backend/internal/utils"
)

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user := CurrentUser(r.Context())
	b, err := h.bookings.CreateBooking(r.Context(), user.ID, mux.Vars(r)["equipmentId"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":     b,
		"redirect_to": "/booking/confirmation/" + b.ID,
	})
}

func (h *Handler) bookingConfirmation(w http.ResponseWriter, r *http.Request) {
	v, err := h.bookings.GetBooking(r.Context(), CurrentUser(r.Context()).ID, mux.Vars(r)["bookingId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := map[string]any{
		"booking":         v,
		"total_formatted": utils.FormatRupiah(v.TotalAmount),
	}
	if v.AwaitsPayment {
		resp["payment_url"] = "/payment/" + v.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]
	pdf, err := h.bookings.Receipt(r.Context(), CurrentUser(r.Context()).ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="booking-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *Handler) cancelBooking(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, r, err)
			return
		}
	}
	b, err := h.bookings.CancelBooking(r.Context(), CurrentUser(r.Context()).ID, mux.Vars(r)["bookingId"], in.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": b})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.bookings.Dashboard(r.Context(), CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.GetProfile(r.Context(), CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.profiles.UpdateProfile(r.Context(), CurrentUser(r.Context()).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
