// Package auth handles operator accounts, credentials and JWT sessions.
package auth

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// User is an operator account of the CRM.
type User struct {
	ID           kernel.UserID `json:"id" db:"id"`
	Email        string        `json:"email" db:"email"`
	Name         string        `json:"name" db:"name"`
	PasswordHash string        `json:"-" db:"password_hash"`
	IsActive     bool          `json:"is_active" db:"is_active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// TokenClaims is the decoded content of a validated access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

var authErrors = errx.NewRegistry("AUTH")

var (
	CodeInvalidCredentials = authErrors.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
	CodeUserInactive       = authErrors.Register("USER_INACTIVE", errx.TypeAuthorization, http.StatusForbidden, "User account is inactive")
	CodeUnauthorized       = authErrors.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeTokenGeneration    = authErrors.Register("TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
	CodeTokenValidation    = authErrors.Register("TOKEN_VALIDATION", errx.TypeAuthorization, http.StatusUnauthorized, "Token validation failed")
	CodeUserNotFound       = authErrors.Register("USER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
)

func ErrInvalidCredentials() *errx.Error { return authErrors.New(CodeInvalidCredentials) }
func ErrUserInactive() *errx.Error       { return authErrors.New(CodeUserInactive) }
func ErrUnauthorized() *errx.Error       { return authErrors.New(CodeUnauthorized) }
func ErrUserNotFound() *errx.Error       { return authErrors.New(CodeUserNotFound) }

func ErrTokenGenerationFailed() *errx.Error { return authErrors.New(CodeTokenGeneration) }
func ErrTokenValidationFailed() *errx.Error { return authErrors.New(CodeTokenValidation) }
