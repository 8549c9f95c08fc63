package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

func parsePrice(q, name string) (int64, error) {
	v := strings.TrimSpace(q)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must be a non-negative whole number"}
	}
	return n, nil
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EquipmentFilter{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Search:   q.Get("search"),
	}
	var err error
	if filter.MinPrice, err = parsePrice(q.Get("min_price"), "min_price"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.MaxPrice, err = parsePrice(q.Get("max_price"), "max_price"); err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.equipment.ListEquipment(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"equipment": items, "count": len(items)})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.equipment.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) getEquipment(w http.ResponseWriter, r *http.Request) {
	e, err := h.equipment.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	similar := h.equipment.SimilarEquipment(r.Context(), e)
	if similar == nil {
		similar = []domain.Equipment{}
	}
	writeJSON(w, http.StatusOK, struct {
		*domain.Equipment
		Similar []domain.Equipment `json:"similar"`
	}{e, similar})
}

// quote previews the booking form total. Missing dates quote zero.
func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := utils.ParseOptionalDate(q.Get("start"))
	if err != nil {
		writeError(w, r, domain.ValidationError{Field: "start", Msg: err.Error()})
		return
	}
	end, err := utils.ParseOptionalDate(q.Get("end"))
	if err != nil {
		writeError(w, r, domain.ValidationError{Field: "end", Msg: err.Error()})
		return
	}
	e, quote, err := h.equipment.QuoteEquipment(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"equipment_id":    e.ID,
		"daily_rate":      e.DailyRate,
		"days":            quote.Days,
		"total_amount":    quote.TotalAmount,
		"total_formatted": utils.FormatRupiah(quote.TotalAmount),
		"delivery_fee":    0,
	})
}
