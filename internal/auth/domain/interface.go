package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/domain UserRepository

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user has the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}
