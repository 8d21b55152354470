package doctor

import (
	"scorebook/core/errs"
	"scorebook/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for store diagnosis.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the doctor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/doctor", h.HandleDiagnose)
}

// HandleDiagnose runs all consistency checks.
// @Summary Diagnose Store
// @Description Run every read-only consistency check: schema completeness, stage-tree mirroring, orphaned rows and identity duplicates.
// @Tags doctor
// @Produce json
// @Success 200 {object} doctor.Report "Diagnosis"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /doctor [get]
func (h *Handler) HandleDiagnose(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Diagnose(c.Context())
	if err != nil {
		return errs.Render(c, l, "Store diagnosis failed", err)
	}
	return c.JSON(report)
}
