package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/middleware"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

// RegisterRoutes mounts all issue routes behind cookie authentication. The
// rate limiter runs after auth so its key is the user id, not the client IP.
func RegisterRoutes(app *fiber.App, h *IssueHandler, verifier middleware.AccessTokenVerifier, limiter *ratelimit.Limiter) {
	issues := app.Group("/api/issues", middleware.RequireAuth(verifier), middleware.RateLimit(limiter))

	issues.Get("/", h.List)
	issues.Post("/", h.Create)
	issues.Get("/:id", h.Get)
	issues.Put("/:id", h.Update)
	issues.Delete("/:id", h.Delete)
}
