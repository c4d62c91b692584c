package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKey guards machine-to-machine endpoints with a static bearer key.
// Used by the external scraper that feeds the ingest endpoint.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "ingestion is not configured")
			}

			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(key)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
			}

			return next(c)
		}
	}
}
