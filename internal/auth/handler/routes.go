package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/middleware"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, verifier middleware.AccessTokenVerifier, limiter *ratelimit.Limiter) {
	rateLimited := middleware.RateLimit(limiter)

	auth := app.Group("/api/auth")
	auth.Post("/register", rateLimited, h.Register)
	auth.Post("/login", rateLimited, h.Login)
	auth.Post("/refresh", rateLimited, h.Refresh)
	auth.Post("/logout", rateLimited, h.Logout)
	auth.Get("/me", middleware.RequireAuth(verifier), rateLimited, h.Me)
}
