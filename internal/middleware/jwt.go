package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's email claim into the request context under the
// key "email".  The provided secret must match the one used when issuing
// tokens.  This middleware wraps all protected routes so handlers can read
// the verified identity via c.Get("email").
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			email, err := utils.ParseEmail(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
			}

			c.Set("email", email)
			return next(c)
		}
	}
}
