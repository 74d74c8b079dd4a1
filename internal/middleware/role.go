package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/repository"
)

// RoleSource reports the stored role attribute for an identity email.  The
// user repository satisfies this; tests substitute an in-memory fake.
type RoleSource interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// RequireRole returns a middleware that enforces the authenticated user's
// stored role equals the required value, with an exact case-sensitive
// match.  The role comes from a live user-collection lookup rather than a
// token claim, because roles can change after a token is issued.  It must
// run after JWTAuth; a missing identity in context is treated as a
// precondition violation and rejected with 401.  A missing user record or
// a role mismatch is rejected with 403.
func RequireRole(src RoleSource, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get("email").(string)
			if !ok || email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
			}
			got, err := src.RoleOf(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
			}
			if got != role {
				return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
			}
			return next(c)
		}
	}
}
