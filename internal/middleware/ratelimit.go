package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

// RateLimit enforces the limiter for the computed key and attaches the
// X-RateLimit-* headers to every response it touches, including the 429.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := RateLimitKey(c)
		err := limiter.Check(key)

		for k, v := range limiter.Headers(key) {
			c.Set(k, v)
		}

		if err != nil {
			return err
		}

		return c.Next()
	}
}

// RateLimitKey prefers the authenticated user id over the client IP. The IP
// is the first entry of X-Forwarded-For, then the connection address, then
// "unknown".
func RateLimitKey(c *fiber.Ctx) string {
	if userID := UserID(c); userID != "" {
		return "user:" + userID
	}

	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		ip := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if ip != "" {
			return "ip:" + ip
		}
	}

	if ip := c.IP(); ip != "" {
		return "ip:" + ip
	}

	return "ip:unknown"
}
