package dto

import (
	"time"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/domain"
)

// UserOutput is the client-facing shape of a user. The password hash never
// appears here.
type UserOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUser(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResult bundles the authenticated user with the freshly signed session
// credentials. Tokens travel to the client as cookies, never in the body.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}
