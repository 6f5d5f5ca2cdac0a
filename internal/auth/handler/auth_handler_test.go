package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/domain"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/dto"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/handler"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/service"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/mocks"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

type authFixture struct {
	app        *fiber.App
	mockRepo   *mocks.MockUserRepository
	mockMailer *mocks.MockMailer
	tokens     *service.TokenService
}

func newAuthFixture(t *testing.T, limit int) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockMailer := mocks.NewMockMailer(ctrl)
	tokens := service.NewTokenService("access-secret", "refresh-secret", 15, 10080)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userService := service.NewUserService(mockRepo, tokens, mockMailer, logger)
	authHandler := handler.NewAuthHandler(userService, tokens, false)

	app := fiber.New(fiber.Config{ErrorHandler: apierror.FiberErrorHandler(logger)})
	handler.RegisterRoutes(app, authHandler, tokens, ratelimit.New(limit, 15*time.Minute))

	return &authFixture{app: app, mockRepo: mockRepo, mockMailer: mockMailer, tokens: tokens}
}

func jsonRequest(method, path string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegister(t *testing.T) {
	t.Run("success sets session cookies", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		welcomeSent := make(chan struct{})
		f.mockRepo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(nil, nil)
		f.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.mockMailer.EXPECT().SendWelcome(gomock.Any(), "test@example.com", "Alice").DoAndReturn(
			func(_ context.Context, _, _ string) error {
				close(welcomeSent)
				return nil
			})

		input := dto.RegisterInput{Name: "Alice", Email: "test@example.com", Password: "password123"}
		resp, err := f.app.Test(jsonRequest("POST", "/api/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		access := findCookie(resp, "access_token")
		require.NotNil(t, access, "access_token cookie must be set")
		assert.True(t, access.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
		assert.Equal(t, "/", access.Path)
		assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)

		refresh := findCookie(resp, "refresh_token")
		require.NotNil(t, refresh, "refresh_token cookie must be set")
		assert.Equal(t, "/api/auth", refresh.Path)

		body := decodeBody(t, resp)
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "test@example.com", user["email"])
		assert.NotContains(t, user, "password_hash")

		// The token in the cookie is genuinely verifiable.
		claims, err := f.tokens.VerifyAccessToken(access.Value)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", claims.Email)

		select {
		case <-welcomeSent:
		case <-time.After(time.Second):
			t.Fatal("welcome email was never dispatched")
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		existing := &domain.User{ID: "user-1", Email: "test@example.com"}
		f.mockRepo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(existing, nil)

		input := dto.RegisterInput{Name: "Alice", Email: "test@example.com", Password: "password123"}
		resp, err := f.app.Test(jsonRequest("POST", "/api/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email already registered", decodeBody(t, resp)["error"])
	})

	t.Run("short password returns 400", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		input := dto.RegisterInput{Name: "Alice", Email: "test@example.com", Password: "abc"}
		resp, err := f.app.Test(jsonRequest("POST", "/api/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "password must be at least 6 characters", decodeBody(t, resp)["error"])
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte("{not-json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Name: "Alice", Email: "test@example.com", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t, 100)
		f.mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := f.app.Test(jsonRequest("POST", "/api/auth/login", dto.LoginInput{Email: user.Email, Password: "correct-password"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotNil(t, findCookie(resp, "access_token"))
	})

	t.Run("wrong password and unknown email give identical responses", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		f.mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		respWrongPassword, err := f.app.Test(jsonRequest("POST", "/api/auth/login", dto.LoginInput{Email: user.Email, Password: "wrong"}))
		require.NoError(t, err)

		f.mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
		respUnknownEmail, err := f.app.Test(jsonRequest("POST", "/api/auth/login", dto.LoginInput{Email: "nobody@example.com", Password: "whatever"}))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, respWrongPassword.StatusCode)
		assert.Equal(t, respWrongPassword.StatusCode, respUnknownEmail.StatusCode)
		assert.Equal(t, decodeBody(t, respWrongPassword), decodeBody(t, respUnknownEmail))
	})
}

func TestMe(t *testing.T) {
	t.Run("success with valid cookie", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		user := &domain.User{ID: "user-1", Name: "Alice", Email: "test@example.com"}
		f.mockRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)

		token, err := f.tokens.SignAccessToken("user-1", "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		userOut := body["user"].(map[string]any)
		assert.Equal(t, "user-1", userOut["id"])
	})

	t.Run("missing cookie returns 401", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		resp, err := f.app.Test(httptest.NewRequest("GET", "/api/auth/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token for deleted user returns 401", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		f.mockRepo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)

		token, err := f.tokens.SignAccessToken("ghost", "ghost@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("valid refresh cookie rotates the session", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		user := &domain.User{ID: "user-1", Name: "Alice", Email: "test@example.com"}
		f.mockRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)

		refreshToken, err := f.tokens.SignRefreshToken("user-1", "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		access := findCookie(resp, "access_token")
		require.NotNil(t, access)
		claims, err := f.tokens.VerifyAccessToken(access.Value)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("missing refresh cookie returns 401", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		resp, err := f.app.Test(httptest.NewRequest("POST", "/api/auth/refresh", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("access token is not accepted as refresh token", func(t *testing.T) {
		f := newAuthFixture(t, 100)

		accessToken, err := f.tokens.SignAccessToken("user-1", "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: accessToken})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t, 100)

	resp, err := f.app.Test(httptest.NewRequest("POST", "/api/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	access := findCookie(resp, "access_token")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.True(t, access.Expires.Before(time.Now()))
}

func TestAuthRateLimiting(t *testing.T) {
	f := newAuthFixture(t, 2)

	login := func() *http.Response {
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	first := login()
	assert.Equal(t, "2", first.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header.Get("X-RateLimit-Remaining"))

	second := login()
	assert.Equal(t, "0", second.Header.Get("X-RateLimit-Remaining"))

	third := login()
	assert.Equal(t, fiber.StatusTooManyRequests, third.StatusCode)
	assert.Equal(t, "Too many requests", decodeBody(t, third)["error"])
	assert.NotEmpty(t, third.Header.Get("X-RateLimit-Reset"))
}
