package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func roleEcho(setRole string, allowed ...string) *echo.Echo {
	e := echo.New()
	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if setRole != "" {
				c.Set("role", setRole)
			}
			return next(c)
		}
	}
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, inject, RequireRole(allowed...))
	return e
}

func TestRequireRoleAllows(t *testing.T) {
	e := roleEcho("organization", "restaurant", "organization")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	e := roleEcho("volunteer", "restaurant")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	e := roleEcho("", "restaurant")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when no role set, got %d", w.Code)
	}
}
