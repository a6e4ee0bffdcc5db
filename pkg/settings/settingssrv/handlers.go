package settingssrv

import (
	"encoding/json"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/settings"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the settings HTTP API.
type Handlers struct {
	service *Service
}

// NewHandlers creates the settings handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the settings routes under /api/v1/settings.
func (h *Handlers) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	group := app.Group("/api/v1/settings", auth)

	group.Get("/:key", h.get)
	group.Put("/:key", h.upsert)
	group.Delete("/:key", h.delete)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	s, err := h.service.Get(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"key":        s.Key,
		"value":      json.RawMessage(s.Value),
		"updated_by": s.UpdatedBy,
		"updated_at": s.UpdatedAt,
	})
}

func (h *Handlers) upsert(c *fiber.Ctx) error {
	var req settings.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return settings.ErrInvalidRequest("invalid request body")
	}
	if auth, ok := c.Locals(kernel.AuthLocalKey).(*kernel.AuthContext); ok && auth != nil {
		req.UpdatedBy = auth.UserID.String()
	}

	s, err := h.service.Upsert(c.Context(), c.Params("key"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"key":        s.Key,
		"value":      json.RawMessage(s.Value),
		"updated_by": s.UpdatedBy,
		"updated_at": s.UpdatedAt,
	})
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("key")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
