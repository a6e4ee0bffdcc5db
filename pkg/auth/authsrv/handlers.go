package authsrv

import (
	"github.com/Abraxas-365/relaycrm/pkg/auth"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the authentication HTTP API.
type Handlers struct {
	service *Service
}

// NewHandlers creates the auth handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the auth routes. Login and refresh are public; me
// requires a valid token.
func (h *Handlers) RegisterRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Post("/auth/login", h.login)
	app.Post("/auth/refresh", h.refresh)
	app.Get("/auth/me", authMW, h.me)
}

func (h *Handlers) login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidCredentials()
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *Handlers) refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *Handlers) me(c *fiber.Ctx) error {
	authCtx, ok := c.Locals(kernel.AuthLocalKey).(*kernel.AuthContext)
	if !ok || !authCtx.IsValid() {
		return auth.ErrUnauthorized()
	}

	user, err := h.service.Me(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
