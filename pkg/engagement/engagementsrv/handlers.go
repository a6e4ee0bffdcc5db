package engagementsrv

import (
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/engagement"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the engagement HTTP API.
type Handlers struct {
	service *Service
}

// NewHandlers creates the engagement handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the engagement routes under /api/v1/engagements.
func (h *Handlers) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	group := app.Group("/api/v1/engagements", auth)

	group.Post("/", h.create)
	group.Get("/", h.list)
	group.Get("/:id", h.get)
	group.Patch("/:id", h.update)
	group.Delete("/:id", h.delete)
	group.Post("/:id/send", h.send)
}

func (h *Handlers) create(c *fiber.Ctx) error {
	var req engagement.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return engagement.ErrInvalidRequest("invalid request body")
	}

	e, err := h.service.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	filter := engagement.ListFilter{
		LeadID: c.Query("lead_id"),
		Status: c.Query("status"),
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
	e, err := h.service.Get(c.Context(), kernel.NewEngagementID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(e)
}

func (h *Handlers) update(c *fiber.Ctx) error {
	var req engagement.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return engagement.ErrInvalidRequest("invalid request body")
	}

	e, err := h.service.Update(c.Context(), kernel.NewEngagementID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), kernel.NewEngagementID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// send accepts both encodings a composer produces: multipart/form-data when
// the submit carries binary content, JSON otherwise.
func (h *Handlers) send(c *fiber.Ctx) error {
	var msg *engagement.OutboundMessage
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return engagement.ErrInvalidRequest("invalid multipart form")
		}
		decoded, derr := engagement.OutboundFromForm(form)
		if derr != nil {
			return derr
		}
		msg = decoded
	} else {
		decoded, derr := engagement.OutboundFromJSON(c.Body())
		if derr != nil {
			return derr
		}
		msg = decoded
	}

	data, err := h.service.Send(c.Context(), kernel.NewEngagementID(c.Params("id")), msg)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Message sent",
		"data":    data,
	})
}
