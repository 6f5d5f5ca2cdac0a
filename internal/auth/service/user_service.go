package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/domain"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/dto"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/mailer"
)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	mailer mailer.Mailer
	logger *slog.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, m mailer.Mailer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		mailer: m,
		logger: logger,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResult, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed welcome email never fails the registration.
	go func() {
		if err := s.mailer.SendWelcome(context.Background(), user.Email, user.Name); err != nil {
			s.logger.Error("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}()

	return result, nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password so callers cannot enumerate registered accounts.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apierror.AuthInvalid("Invalid credentials")
	}

	return s.issueTokens(user)
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Token outlived the account.
		return nil, apierror.AuthInvalid("")
	}

	return user, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apierror.AuthInvalid("Invalid or expired refresh token")
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierror.AuthInvalid("")
	}

	return s.issueTokens(user)
}

func (s *UserService) issueTokens(user *domain.User) (*dto.AuthResult, error) {
	accessToken, err := s.tokens.SignAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.SignRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
