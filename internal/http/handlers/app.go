package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"studio/internal/authcode"
	"studio/internal/domain"
	"studio/internal/session"
	"studio/internal/state"
)

type App struct {
	Logger   zerolog.Logger
	Store    *state.Store
	Sync     *session.Synchronizer
	Validate *validator.Validate
}

func NewApp(logger zerolog.Logger, store *state.Store, sync *session.Synchronizer) *App {
	return &App{
		Logger:   logger,
		Store:    store,
		Sync:     sync,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]string{"error": errCode, "message": msg})
}

// decode parses the request body into dst and validates it. It writes the
// error response itself and reports whether the caller may proceed.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	if err := a.Validate.Struct(dst); err != nil {
		a.error(w, http.StatusBadRequest, "validation_failed", err.Error())
		return false
	}
	return true
}

// authError renders an authentication-flow failure with a status derived from
// its category.
func (a *App) authError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTermsNotAccepted):
		a.error(w, http.StatusBadRequest, "terms_not_accepted", "you must accept the terms of service")
		return
	case errors.Is(err, domain.ErrNotAuthenticated):
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	case errors.Is(err, session.ErrSuperseded):
		a.error(w, http.StatusConflict, "superseded", "session changed before the operation completed")
		return
	}

	var perr *session.PersistenceError
	if errors.As(err, &perr) {
		a.Logger.Error().Err(err).Msg("profile persistence failed")
		a.error(w, http.StatusBadGateway, "persistence_failed", "could not load profile")
		return
	}

	var aerr *authcode.Error
	if errors.As(err, &aerr) {
		a.error(w, statusForCategory(aerr.Category), string(aerr.Category), aerr.Message)
		return
	}

	a.Logger.Error().Err(err).Msg("unexpected auth failure")
	a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
}

func statusForCategory(c authcode.Category) int {
	switch c {
	case authcode.AccountNotFound, authcode.InvalidCredentials:
		return http.StatusUnauthorized
	case authcode.AccountAlreadyExists, authcode.ConcurrentAuthInProgress:
		return http.StatusConflict
	case authcode.WeakPassword, authcode.InvalidEmailFormat, authcode.InteractiveAuthCancelled:
		return http.StatusBadRequest
	case authcode.RateLimited:
		return http.StatusTooManyRequests
	case authcode.NetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
