package handler

import (
	"github.com/labstack/echo/v4"
)

// getUserID reads the authenticated user id stored by the JWT
// middleware.  Returns 0 when the request is unauthenticated, which
// protected routes never see.
func getUserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// getRole reads the authenticated user's role.
func getRole(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}
