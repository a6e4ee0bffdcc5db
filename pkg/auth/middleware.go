package auth

import (
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware authenticates requests with a Bearer access token.
type TokenMiddleware struct {
	tokens TokenService
}

// NewTokenMiddleware creates the authentication middleware.
func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate validates the Authorization header and stores the caller's
// AuthContext in the request locals.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrUnauthorized()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return ErrUnauthorized().WithDetail("reason", "malformed Authorization header")
		}

		claims, err := m.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(kernel.AuthLocalKey, &kernel.AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		return c.Next()
	}
}
