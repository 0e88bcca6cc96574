package handlers

import (
	"errors"
	"net/http"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/cookiejar"
	sessionsvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/session"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/dto"
	httperrors "github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/errors"
)

type AuthHandler struct {
	service *sessionsvc.Service
}

func NewAuthHandler(service *sessionsvc.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session service is unavailable")
		return
	}

	redirect := h.service.Login(cookiejar.FromRequest(r))
	http.Redirect(w, r, redirect.URL, redirect.Status)
}

func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session service is unavailable")
		return
	}

	code := r.URL.Query().Get("code")
	jar, redirect := h.service.Callback(r.Context(), cookiejar.FromRequest(r), code)

	jar.WriteTo(w.Header())
	http.Redirect(w, r, redirect.URL, redirect.Status)
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session service is unavailable")
		return
	}

	jar, user, err := h.service.Status(r.Context(), cookiejar.FromRequest(r))
	// Cookie changes apply on failure too: a profile-fetch failure clears
	// the pair, a refresh failure leaves the delta empty.
	jar.WriteTo(w.Header())

	if err != nil {
		switch {
		case errors.Is(err, sessionsvc.ErrConfigMissing):
			writeInternal(w, "PROVIDER_CONFIG_MISSING", "identity provider is not configured")
		case errors.Is(err, sessionsvc.ErrUnauthorized):
			writeUnauthorized(w, "UNAUTHORIZED", "not logged in")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserResponseFrom(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session service is unavailable")
		return
	}

	jar, redirect := h.service.Logout(r.Context(), cookiejar.FromRequest(r))
	jar.WriteTo(w.Header())
	http.Redirect(w, r, redirect.URL, redirect.Status)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
