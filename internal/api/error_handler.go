package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrAirportNotFound),
		errors.Is(err, domain.ErrAircraftNotFound),
		errors.Is(err, domain.ErrSettingNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrInvalidModel),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidUpgradeType),
		errors.Is(err, domain.ErrMaxLevel),
		errors.Is(err, domain.ErrNoAvailableSpot):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, err.Error()

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrSpotConflict):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"

	case errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrAccountBanned),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
