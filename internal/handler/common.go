package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// claimEmail extracts the verified identity email placed into the context
// by the JWTAuth middleware.  An error means the middleware did not run or
// the claim is missing, which handlers treat as unauthenticated.
func claimEmail(c echo.Context) (string, error) {
	v := c.Get("email")
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing email claim in context")
}

// ownEmail enforces the ownership-scoping pattern: the caller-supplied
// email must equal the verified identity's email.  On failure it writes
// the 401/403 response itself and reports false, so the handler simply
// returns nil.  This check is independent of the role gate.
func ownEmail(c echo.Context, supplied string) (string, bool) {
	claim, err := claimEmail(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
		return "", false
	}
	if supplied != claim {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
		return "", false
	}
	return claim, true
}

// Validator adapts go-playground/validator to Echo's Validator interface so
// handlers can call c.Validate on bound request bodies.
type Validator struct{ validate *validator.Validate }

// NewValidator constructs the application validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.  Violations surface as 400 responses.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
