package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/model"
	"github.com/mealbridge/mealbridge/internal/utils"
)

// fakeUsers satisfies UserLookup with an in-memory map.
type fakeUsers map[uint64]model.User

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return model.User{}, errors.New("no such user")
}

const testSecret = "unit-test-secret"

func newAuthedEcho(users UserLookup) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, JWTAuth(testSecret, users))
	return e
}

func issueToken(t *testing.T, secret string, id uint64, role string, ttlHours int) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, id, "u@example.com", role, ttlHours)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok.Token
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := newAuthedEcho(fakeUsers{})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	e := newAuthedEcho(fakeUsers{})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc") // wrong scheme
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed header, got %d", w.Code)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	e := newAuthedEcho(fakeUsers{})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for invalid token, got %d", w.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	users := fakeUsers{7: {ID: 7, Email: "u@example.com", Role: model.RoleVolunteer}}
	e := newAuthedEcho(users)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, testSecret, 7, model.RoleVolunteer, -1))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", w.Code)
	}
}

func TestJWTAuthDeletedUser(t *testing.T) {
	e := newAuthedEcho(fakeUsers{}) // token subject does not exist
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, testSecret, 9, model.RoleRestaurant, 1))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vanished user, got %d", w.Code)
	}
}

func TestJWTAuthHappyPath(t *testing.T) {
	users := fakeUsers{7: {ID: 7, Email: "u@example.com", Role: model.RoleRestaurant}}
	e := newAuthedEcho(users)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, testSecret, 7, model.RoleRestaurant, 1))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestJWTAuthRoleFromDatabaseWins(t *testing.T) {
	// The stored role, not the token claim, decides authorization.
	users := fakeUsers{5: {ID: 5, Email: "u@example.com", Role: model.RoleVolunteer}}
	e := echo.New()
	e.GET("/restaurant-only", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		JWTAuth(testSecret, users), RequireRole(model.RoleRestaurant))

	req := httptest.NewRequest(http.MethodGet, "/restaurant-only", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, testSecret, 5, model.RoleRestaurant, 1))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when stored role differs, got %d", w.Code)
	}
}
