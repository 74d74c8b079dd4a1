package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/utils"
)

// TokenHandler issues access tokens.  There is no credential exchange:
// sign-in happens on the client against the identity provider, and this
// endpoint converts the resulting email into a short-lived bearer token.
type TokenHandler struct {
	Secret string // HS256 signing secret
	TTLMin int    // token lifetime in minutes
}

// NewTokenHandler constructs a TokenHandler.
func NewTokenHandler(secret string, ttlMin int) *TokenHandler {
	return &TokenHandler{Secret: secret, TTLMin: ttlMin}
}

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Issue handles POST /jwt.  It signs a token embedding the email claim and
// returns it to the caller.
func (h *TokenHandler) Issue(c echo.Context) error {
	var body issueTokenRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	tok, err := utils.NewAccessToken(h.Secret, body.Email, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "failed to sign token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token})
}
