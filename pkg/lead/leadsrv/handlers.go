package leadsrv

import (
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/lead"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the lead HTTP API.
type Handlers struct {
	service *Service
}

// NewHandlers creates the lead handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the lead routes under /api/v1/leads.
func (h *Handlers) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	group := app.Group("/api/v1/leads", auth)

	group.Post("/", h.create)
	group.Get("/", h.list)
	group.Get("/:id", h.get)
	group.Patch("/:id", h.update)
	group.Delete("/:id", h.delete)
}

func (h *Handlers) create(c *fiber.Ctx) error {
	var req lead.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return lead.ErrInvalidRequest("invalid request body")
	}

	l, err := h.service.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	filter := lead.ListFilter{
		Stage:   c.Query("stage"),
		OwnerID: c.Query("owner_id"),
		Search:  c.Query("q"),
	}
	opts := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	page, err := h.service.List(c.Context(), filter, opts)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	l, err := h.service.Get(c.Context(), kernel.NewLeadID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(l)
}

func (h *Handlers) update(c *fiber.Ctx) error {
	var req lead.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return lead.ErrInvalidRequest("invalid request body")
	}

	l, err := h.service.Update(c.Context(), kernel.NewLeadID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), kernel.NewLeadID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
