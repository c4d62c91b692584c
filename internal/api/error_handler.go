package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
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
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrOrgNotFound):
		return http.StatusNotFound, "organisation not found"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, "application not found"
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, "plan not found"
	case errors.Is(err, domain.ErrSettlementNotFound):
		return http.StatusNotFound, "settlement not found"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "account already exists"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusConflict, "already applied to this job"
	case errors.Is(err, domain.ErrNoCredits):
		return http.StatusPaymentRequired, "no job credits remaining"
	case errors.Is(err, domain.ErrJobNotPublished):
		return http.StatusUnprocessableEntity, "job is not open for applications"
	case errors.Is(err, domain.ErrNotWithdrawable):
		return http.StatusUnprocessableEntity, "application can no longer be withdrawn"
	case errors.Is(err, domain.ErrPaymentNotSuccessful):
		return http.StatusUnprocessableEntity, "payment verification failed"
	case errors.Is(err, domain.ErrCreditConflict):
		return http.StatusConflict, "credit balance changed, please retry"
	case errors.Is(err, domain.ErrPaymentProvider):
		return http.StatusBadGateway, "payment provider unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
