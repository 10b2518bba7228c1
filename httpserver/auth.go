package httpserver

import (
	"movievault/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated principal set by the JWT
// middleware. The value is trusted as-is; token validation already happened
// upstream.
func currentUserID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", errs.Errorf(errs.EUNAUTHORIZED, "missing authenticated principal")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errs.Errorf(errs.EUNAUTHORIZED, "invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errs.Errorf(errs.EUNAUTHORIZED, "invalid user id claim")
	}

	return userID, nil
}
