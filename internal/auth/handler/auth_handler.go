package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/dto"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/service"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/middleware"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/validation"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	cookieSecure bool
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apierror.Validation("Request body must be valid JSON", nil)
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	result, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": dto.FromUser(result.User),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apierror.Validation("Request body must be valid JSON", nil)
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	result, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": dto.FromUser(result.User),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return apierror.AuthInvalid("")
	}

	user, err := h.userService.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": dto.FromUser(user),
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(middleware.RefreshTokenCookie)
	if token == "" {
		return apierror.AuthInvalid("")
	}

	result, err := h.userService.Refresh(c.UserContext(), token)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": dto.FromUser(result.User),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearCookie(c, middleware.AccessTokenCookie, "/")
	h.clearCookie(c, middleware.RefreshTokenCookie, "/api/auth")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// setAuthCookies attaches the session credentials as HTTP-only cookies. The
// Max-Age mirrors each token's TTL so cookie and token expire together.
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.tokenService.AccessTokenTTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/api/auth",
		MaxAge:   int(h.tokenService.RefreshTokenTTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name, path string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
