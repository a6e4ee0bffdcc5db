package auth

import (
	"context"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// UserRepository persists operator accounts.
type UserRepository interface {
	Save(ctx context.Context, u User) error
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// TokenService issues and validates session tokens.
type TokenService interface {
	GenerateAccessToken(user *User) (string, time.Time, error)
	GenerateRefreshToken(userID kernel.UserID) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (kernel.UserID, error)
}
