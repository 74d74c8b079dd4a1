package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root is the liveness endpoint at GET /.  It returns a plain text message
// so load balancers and uptime monitors can verify the service is running.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "sportfitx server is running")
}
