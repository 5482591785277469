// Package auth turns a bearer token into an authenticated user identity.
// User accounts themselves are managed by a separate service; this layer only
// verifies tokens it issued and exposes the caller's user id to handlers.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "auth.userID"

// GenerateToken signs a HS256 token carrying the user id as subject.
func GenerateToken(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Middleware validates the Authorization bearer token and stores the user id
// in the request context. Requests without a valid token get a 401.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := userIDFromRequest(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			SetUserID(c, userID)
			return next(c)
		}
	}
}

// SetUserID stores the authenticated user id in the request context.
func SetUserID(c echo.Context, userID string) {
	c.Set(userIDKey, userID)
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}

func userIDFromRequest(c echo.Context, secret string) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" || raw == header {
		// Browsers cannot set headers on WebSocket dials, so the token may
		// come as a query parameter instead.
		raw = c.QueryParam("token")
	}
	if raw == "" {
		return "", fmt.Errorf("no token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
