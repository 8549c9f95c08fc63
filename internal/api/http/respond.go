package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
)

type errorBody struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Expected   *int64 `json:"expected_amount,omitempty"`
	Got        *int64 `json:"amount,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return domain.ValidationError{Msg: "invalid request body"}
	}
	return nil
}

// statusFor maps the domain error taxonomy onto HTTP.
func statusFor(err error) (int, errorBody) {
	body := errorBody{Error: err.Error()}

	var verr domain.ValidationError
	var mismatch domain.AmountMismatchError
	var authErr domain.AuthRequiredError
	var perr domain.PersistenceError
	switch {
	case errors.As(err, &mismatch):
		body.Field = "amount"
		body.Expected, body.Got = &mismatch.Expected, &mismatch.Got
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &verr):
		body.Field = verr.Field
		return http.StatusBadRequest, body
	case errors.As(err, &authErr):
		body.RedirectTo = loginURL(authErr.RedirectTo)
		return http.StatusUnauthorized, body
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidAuthCode):
		return http.StatusUnauthorized, body
	case errors.Is(err, domain.ErrEmailNotConfirmed), domain.IsForbidden(err):
		return http.StatusForbidden, body
	case domain.IsNotFound(err):
		return http.StatusNotFound, body
	case domain.IsConflict(err):
		return http.StatusConflict, body
	case errors.As(err, &perr):
		// Store failures reach the user as-is so they can dismiss and retry.
		body.Error = perr.Error()
		if perr.Retryable {
			body.Retryable = true
			return http.StatusServiceUnavailable, body
		}
		return http.StatusInternalServerError, body
	case errors.Is(err, context.DeadlineExceeded):
		body.Error = "the request timed out, please try again"
		body.Retryable = true
		return http.StatusServiceUnavailable, body
	}
	body.Error = "internal server error"
	return http.StatusInternalServerError, body
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		logger.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	if body.Retryable {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, body)
}

func loginURL(redirect string) string {
	if redirect == "" {
		return "/auth/login"
	}
	return "/auth/login?redirect=" + url.QueryEscape(redirect)
}

// wantsHTML is true for browser navigations.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// localPath keeps only same-site relative paths.
func localPath(p, fallback string) string {
	if strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\") {
		return p
	}
	return fallback
}
