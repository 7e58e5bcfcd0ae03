package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the authenticated username injected by the Auth
// middleware and performs a fast-fail check before any service call: both
// username and role must be non-empty (presence proves the middleware ran).
func ctxActor(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, role, nil
}
