package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
)

// SessionCookie carries the access token for browser clients.
const SessionCookie = "sb-session"

type userKey struct{}

func withUser(ctx context.Context, u *domain.AuthUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// CurrentUser is the signed-in user, or nil.
func CurrentUser(ctx context.Context) *domain.AuthUser {
	u, _ := ctx.Value(userKey{}).(*domain.AuthUser)
	return u
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := logger.WithContext(r.Context(), "request_id", requestID)

		if h.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
			defer cancel()
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		h.metrics.ObserveHTTP(r.Method, route, rec.status, elapsed)
		logger.InfoContext(ctx, "HTTP request", "method", r.Method, "route", route, "status", rec.status, "duration_ms", elapsed.Milliseconds())
	})
}

// sessionToken reads the bearer header first and falls back to the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// session resolves the caller if a token is present. Anonymous requests pass through.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := h.auth.GetUser(r.Context(), token)
		if err != nil {
			if !domain.IsAuthRequired(err) {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		ctx := logger.WithContext(withUser(r.Context(), user), "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) != nil {
			next(w, r)
			return
		}
		redirect := r.URL.RequestURI()
		if wantsHTML(r) && r.Method == http.MethodGet {
			http.Redirect(w, r, loginURL(redirect), http.StatusSeeOther)
			return
		}
		writeError(w, r, domain.AuthRequiredError{RedirectTo: redirect})
	}
}

func (h *Handler) requireOperator(next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()).Role != domain.RoleOperator {
			writeError(w, r, domain.ForbiddenError{Msg: "operator access required"})
			return
		}
		next(w, r)
	})
}
