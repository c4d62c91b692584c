package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// actorClaims is the authenticated identity injected by the Auth middleware.
type actorClaims struct {
	UserID string
	Role   string
	OrgID  string
	Email  string
}

// ctxClaims extracts the auth claims and performs a fast-fail check before
// any service call: user_id and role must be non-empty, since their presence
// proves the middleware ran and the token carried a usable identity.
func ctxClaims(c echo.Context) (actorClaims, error) {
	claims := actorClaims{}
	claims.UserID, _ = c.Get("user_id").(string)
	claims.Role, _ = c.Get("role").(string)
	claims.OrgID, _ = c.Get("org_id").(string)
	claims.Email, _ = c.Get("email").(string)

	if claims.UserID == "" || claims.Role == "" {
		return actorClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
