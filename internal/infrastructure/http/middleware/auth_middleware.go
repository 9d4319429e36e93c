package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-iq/errors"
	pkgjwt "github.com/johnquangdev/transcript-iq/pkg/jwt"
)

// Echo context keys set by the auth middleware
const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "user_id" (uuid.UUID) and "claims" (*jwt.Claims) into Echo context.
// When required is false a request without a token passes anonymously;
// a token that is present but invalid is always rejected.
func EchoAuth(verifier *pkgjwt.Verifier, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" || !verifier.Enabled() {
				if required {
					return echoError(c, errors.ErrUnauthenticated())
				}
				return next(c)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return echoError(c, errors.ErrInvalidToken())
			}
			userID, _ := claims.UserID()

			c.Set(UserIDKey, userID)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

// UserID returns the authenticated user, or nil for anonymous requests
func UserID(c echo.Context) *uuid.UUID {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// ExtractToken reads the bearer token from the Authorization header,
// falling back to the access_token cookie.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func echoError(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"error":   appErr.Message,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
