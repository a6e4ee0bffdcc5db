package auth

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessAudience  = "relaycrm-api"
	refreshAudience = "relaycrm-refresh"
)

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
}

// NewJWTService creates the JWT token service.
func NewJWTService(secretKey string, accessTokenTTL time.Duration, issuer string) *JWTService {
	if accessTokenTTL == 0 {
		accessTokenTTL = 15 * time.Minute
	}
	if issuer == "" {
		issuer = "relaycrm"
	}

	return &JWTService{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: 7 * 24 * time.Hour,
		issuer:          issuer,
	}
}

type jwtClaims struct {
	UserID kernel.UserID `json:"user_id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed access token for the user.
func (j *JWTService) GenerateAccessToken(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.accessTokenTTL)

	claims := jwtClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   user.ID.String(),
			Audience:  []string{accessAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, ErrTokenGenerationFailed().WithDetail("error", err.Error())
	}
	return signed, expiresAt, nil
}

// GenerateRefreshToken issues a signed refresh token.
func (j *JWTService) GenerateRefreshToken(userID kernel.UserID) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   userID.String(),
		Audience:  []string{refreshAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", ErrTokenGenerationFailed().WithDetail("error", err.Error())
	}
	return signed, nil
}

// ValidateAccessToken validates and decodes an access token.
func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, j.keyFunc,
		jwt.WithAudience(accessAudience), jwt.WithIssuer(j.issuer))
	if err != nil {
		return nil, ErrTokenValidationFailed().WithDetail("error", err.Error())
	}
	if !token.Valid {
		return nil, ErrTokenValidationFailed().WithDetail("error", "token is invalid")
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		return nil, ErrTokenValidationFailed().WithDetail("error", "invalid claims type")
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateRefreshToken validates a refresh token and returns its subject.
func (j *JWTService) ValidateRefreshToken(tokenString string) (kernel.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, j.keyFunc,
		jwt.WithAudience(refreshAudience), jwt.WithIssuer(j.issuer))
	if err != nil {
		return "", ErrTokenValidationFailed().WithDetail("error", err.Error())
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrTokenValidationFailed().WithDetail("error", "token is invalid")
	}
	return kernel.NewUserID(claims.Subject), nil
}

func (j *JWTService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return j.secretKey, nil
}
