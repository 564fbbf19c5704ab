package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/httpx"
)

// writeServiceError translates service-layer errors into the error
// envelope. Anything unrecognised is a 500 and gets logged; expected
// errors are the caller's problem, not ours, and stay out of the log.
func writeServiceError(w http.ResponseWriter, l *slog.Logger, err error) {
	if ve, ok := service.AsValidation(err); ok {
		httpx.WriteError(w, http.StatusBadRequest, "validation failed", ve.Problems...)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrAccountLocked):
		httpx.WriteError(w, http.StatusForbidden, "account is locked, try again later")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "email is already registered")
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusBadRequest, "username is already taken")
	case errors.Is(err, service.ErrCategoryUnknown):
		httpx.WriteError(w, http.StatusBadRequest, "unknown category")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "you may only modify your own account")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		l.Error("request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
