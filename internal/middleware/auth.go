// Package middleware holds the per-route pipeline stages: session
// authentication from the access-token cookie and fixed-window rate
// limiting. Routes opt in by listing the stages they need.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/service"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// AccessTokenVerifier is the slice of the token service the middleware needs.
type AccessTokenVerifier interface {
	VerifyAccessToken(tokenString string) (*service.JWTCustomClaims, error)
}

// RequireAuth extracts and verifies the access-token cookie and stores the
// caller's identity in the request locals.
func RequireAuth(verifier AccessTokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AccessTokenCookie)
		if token == "" {
			return apierror.AuthInvalid("")
		}

		claims, err := verifier.VerifyAccessToken(token)
		if err != nil {
			return apierror.AuthInvalid("Invalid or expired access token")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserEmailKey, claims.Email)

		return c.Next()
	}
}

// UserID returns the authenticated user id placed by RequireAuth, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// UserEmail returns the authenticated user email placed by RequireAuth, or "".
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(UserEmailKey).(string)
	return email
}
