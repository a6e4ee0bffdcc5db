// Package authsrv holds the login and session business logic.
package authsrv

import (
	"context"

	"github.com/Abraxas-365/relaycrm/pkg/auth"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"golang.org/x/crypto/bcrypt"
)

// Service implements authentication operations.
type Service struct {
	users  auth.UserRepository
	tokens auth.TokenService
}

// NewService wires the auth service.
func NewService(users auth.UserRepository, tokens auth.TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login checks the credentials and issues a token pair. Unknown email and
// wrong password produce the same error so the endpoint does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, auth.ErrInvalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, auth.ErrInvalidCredentials()
	}
	if !user.IsActive {
		return nil, auth.ErrUserInactive()
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.LoginResponse, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, auth.ErrUnauthorized()
	}
	if !user.IsActive {
		return nil, auth.ErrUserInactive()
	}

	return s.issueTokens(user)
}

// Me returns the account behind an authenticated context.
func (s *Service) Me(ctx context.Context, userID kernel.UserID) (*auth.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *Service) issueTokens(user *auth.User) (*auth.LoginResponse, error) {
	access, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &auth.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         sanitized,
	}, nil
}

// HashPassword derives the stored hash for a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
