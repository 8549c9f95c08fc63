package http

import (
	"net/http"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/service"
)

func (h *Handler) setSession(w http.ResponseWriter, s *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.AccessToken,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var in service.SignUpInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.auth.SignUp(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":        user,
		"message":     "Check your email to confirm your account",
		"redirect_to": "/auth/sign-up-success",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Redirect string `json:"redirect"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.auth.SignInWithPassword(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setSession(w, session)
	writeJSON(w, http.StatusOK, map[string]any{
		"session":     session,
		"redirect_to": localPath(in.Redirect, "/dashboard"),
	})
}

// callback is the landing page of the emailed confirmation link.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	session, err := h.auth.ExchangeCodeForSession(r.Context(), q.Get("code"))
	if err != nil {
		if domain.IsPersistence(err) {
			writeError(w, r, err)
			return
		}
		http.Redirect(w, r, "/auth/auth-code-error", http.StatusSeeOther)
		return
	}
	h.setSession(w, session)
	http.Redirect(w, r, localPath(q.Get("next"), "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.auth.RefreshSession(r.Context(), in.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setSession(w, session)
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), sessionToken(r)); err != nil {
		writeError(w, r, err)
		return
	}
	h.clearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirect_to": "/"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CurrentUser(r.Context()))
}
