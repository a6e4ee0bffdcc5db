package remindersrv

import (
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the reminder HTTP API.
type Handlers struct {
	service *Service
}

// NewHandlers creates the reminder handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the reminder routes under /api/v1/reminders.
func (h *Handlers) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	group := app.Group("/api/v1/reminders", auth)

	group.Post("/", h.create)
	group.Get("/:id", h.get)
	group.Post("/:id/cancel", h.cancel)
	group.Delete("/:id", h.delete)

	app.Get("/api/v1/engagements/:id/reminders", auth, h.listByEngagement)
}

func (h *Handlers) create(c *fiber.Ctx) error {
	var req reminder.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return reminder.ErrInvalidRequest("invalid request body")
	}

	r, err := h.service.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	r, err := h.service.Get(c.Context(), kernel.NewReminderID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *Handlers) cancel(c *fiber.Ctx) error {
	r, err := h.service.Cancel(c.Context(), kernel.NewReminderID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), kernel.NewReminderID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) listByEngagement(c *fiber.Ctx) error {
	items, err := h.service.ListByEngagement(c.Context(), kernel.NewEngagementID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}
