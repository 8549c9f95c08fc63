package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/service"
)

// Services groups everything the HTTP surface calls into.
type Services struct {
	Equipment service.EquipmentService
	Bookings  service.BookingService
	Payments  service.PaymentService
	Operator  service.OperatorService
	Profiles  service.ProfileService
	Auth      service.AuthService
}

type Options struct {
	Metrics        *metrics.Metrics
	ExposeMetrics  bool
	RequestTimeout time.Duration
	SecureCookies  bool
}

type Handler struct {
	equipment service.EquipmentService
	bookings  service.BookingService
	payments  service.PaymentService
	operator  service.OperatorService
	profiles  service.ProfileService
	auth      service.AuthService

	metrics        *metrics.Metrics
	requestTimeout time.Duration
	secureCookies  bool
}

func NewRouter(svcs Services, opts Options) *mux.Router {
	h := &Handler{
		equipment:      svcs.Equipment,
		bookings:       svcs.Bookings,
		payments:       svcs.Payments,
		operator:       svcs.Operator,
		profiles:       svcs.Profiles,
		auth:           svcs.Auth,
		metrics:        opts.Metrics,
		requestTimeout: opts.RequestTimeout,
		secureCookies:  opts.SecureCookies,
	}

	r := mux.NewRouter()
	r.Use(h.requestLogging, h.session)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	if opts.ExposeMetrics && opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Auth
	r.HandleFunc("/auth/sign-up", h.signUp).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/callback", h.callback).Methods(http.MethodGet)
	r.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/user", h.requireAuth(h.currentUser)).Methods(http.MethodGet)

	// Catalogue
	r.HandleFunc("/equipment", h.listEquipment).Methods(http.MethodGet)
	r.HandleFunc("/equipment/categories", h.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/equipment/{id}", h.getEquipment).Methods(http.MethodGet)
	r.HandleFunc("/equipment/{id}/quote", h.quote).Methods(http.MethodGet)

	// Bookings
	r.HandleFunc("/booking/confirmation/{bookingId}", h.requireAuth(h.bookingConfirmation)).Methods(http.MethodGet)
	r.HandleFunc("/booking/confirmation/{bookingId}/receipt.pdf", h.requireAuth(h.receipt)).Methods(http.MethodGet)
	r.HandleFunc("/booking/{bookingId}/cancel", h.requireAuth(h.cancelBooking)).Methods(http.MethodPost)
	r.HandleFunc("/booking/{equipmentId}", h.requireAuth(h.createBooking)).Methods(http.MethodPost)

	// Payments
	r.HandleFunc("/payment/confirmation/{bookingId}", h.requireAuth(h.paymentConfirmation)).Methods(http.MethodGet)
	r.HandleFunc("/payment/{bookingId}", h.requireAuth(h.paymentPage)).Methods(http.MethodGet)
	r.HandleFunc("/payment/{bookingId}", h.requireAuth(h.submitPayment)).Methods(http.MethodPost)
	r.HandleFunc("/payment/{bookingId}/proof", h.requireAuth(h.uploadProof)).Methods(http.MethodPut)

	// Account
	r.HandleFunc("/dashboard", h.requireAuth(h.dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/profile", h.requireAuth(h.getProfile)).Methods(http.MethodGet)
	r.HandleFunc("/profile", h.requireAuth(h.updateProfile)).Methods(http.MethodPut)

	// Operator
	r.HandleFunc("/admin/bookings/export.xlsx", h.requireOperator(h.exportBookings)).Methods(http.MethodGet)
	r.HandleFunc("/files/{key:.+}", h.requireOperator(h.downloadFile)).Methods(http.MethodGet)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
