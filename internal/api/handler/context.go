package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// principalUsername extracts the username injected by the Basic auth
// middleware and fast-fails when it is missing: presence proves the
// middleware ran, so an empty value means the route was wired without
// authentication.
func principalUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication principal")
	}
	return username, nil
}
