package photo

import (
	"scorebook/core/errs"
	"scorebook/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for photos.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the photo routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/photos/:refTable/:refId", h.HandleAttach)
	app.Get("/photos/:refTable/:refId", h.HandleListForRef)
	app.Get("/photos/:id", h.HandleOpen)
	app.Delete("/photos/:id", h.HandleDetach)
}

// HandleAttach stores the request body as a photo on the given row.
// @Summary Attach Photo
// @Description Attach the raw request body as a photo to a row. The payload is content addressed by its sha256 hash; posting bytes that are already stored returns the existing photo without another upload.
// @Tags photo
// @Accept octet-stream
// @Produce json
// @Param refTable path string true "Table of the row the photo belongs to"
// @Param refId path string true "Row ID"
// @Param name query string false "Display name"
// @Success 201 {object} schema.Photo "Photo"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Row"
// @Router /photos/{refTable}/{refId} [post]
func (h *Handler) HandleAttach(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	photo, err := h.service.Attach(c.Context(),
		c.Params("refTable"), c.Params("refId"),
		c.Query("name"), c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		return errs.Render(c, l, "Photo attach failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

// HandleListForRef lists the photos attached to one row.
// @Summary List Photos
// @Description List every photo attached to a row, oldest first.
// @Tags photo
// @Produce json
// @Param refTable path string true "Table of the row"
// @Param refId path string true "Row ID"
// @Success 200 {array} schema.Photo "Photos"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /photos/{refTable}/{refId} [get]
func (h *Handler) HandleListForRef(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	photos, err := h.service.ListForRef(c.Context(), c.Params("refTable"), c.Params("refId"))
	if err != nil {
		return errs.Render(c, l, "Photo listing failed", err)
	}
	return c.JSON(photos)
}

// HandleOpen streams a photo payload.
// @Summary Open Photo
// @Description Stream a photo's payload with its stored content type.
// @Tags photo
// @Produce octet-stream
// @Param id path string true "Photo ID"
// @Success 200 {file} binary "Payload"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /photos/{id} [get]
func (h *Handler) HandleOpen(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	photo, reader, err := h.service.Open(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Photo open failed", err)
	}
	c.Set(fiber.HeaderContentType, photo.ContentType)
	return c.SendStream(reader, int(photo.Size))
}

// HandleDetach removes a photo row and its payload.
// @Summary Detach Photo
// @Description Remove a photo row together with its stored payload.
// @Tags photo
// @Param id path string true "Photo ID"
// @Success 204 "Detached"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /photos/{id} [delete]
func (h *Handler) HandleDetach(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Detach(c.Context(), c.Params("id")); err != nil {
		return errs.Render(c, l, "Photo detach failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
