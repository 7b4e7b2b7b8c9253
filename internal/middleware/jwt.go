package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/mealbridge/internal/model"
	"github.com/mealbridge/mealbridge/internal/utils"
)

// UserLookup resolves a user id to its row.  Satisfied by
// *repository.UserRepo; tests substitute an in-memory fake.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// confirms the subject still exists, and injects "user_id" (uint64),
// "email" and "role" into the request context for downstream handlers.
//
// A missing or malformed Authorization header is a 401: the client never
// authenticated.  A token that fails validation, or whose user has been
// deleted since issuance, is a 403: credentials were presented but are no
// longer acceptable.
func JWTAuth(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// The header must carry exactly "Bearer <token>".
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// ParseAccessToken enforces the HMAC signing method and the
			// exp claim; expired and tampered tokens both land here.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid or expired token"})
			}

			userID, ok := subjectID(claims)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid or expired token"})
			}

			// Tokens outlive account deletion, so re-check the user row on
			// every request rather than trusting the claims alone.
			u, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "user no longer exists"})
			}

			c.Set("user_id", u.ID)
			c.Set("email", u.Email)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}

// subjectID extracts the numeric subject from parsed claims.  JSON
// numbers decode as float64, so both encodings are accepted.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		var id uint64
		for _, ch := range v {
			if ch < '0' || ch > '9' {
				return 0, false
			}
			id = id*10 + uint64(ch-'0')
		}
		return id, v != ""
	}
	return 0, false
}
