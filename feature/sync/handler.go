package sync

import (
	"strings"

	"scorebook/core/errs"
	"scorebook/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes snapshot export and import over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new sync handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync endpoints.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sync/export", h.HandleExport)
	app.Post("/sync/import", h.HandleImport)
}

// HandleExport produces a snapshot of the local store.
// @Summary Export Snapshot
// @Description Export the local store as a snapshot payload: every snapshot-eligible table's rows in dependency order, stamped with this store's permanent storage id.
// @Tags sync
// @Produce json
// @Param tables query string false "Comma-separated table subset"
// @Param stripMetadata query boolean false "Drop metadata maps from every row"
// @Success 200 {object} sync.Snapshot "Snapshot"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := ExportOptions{StripMetadata: c.Query("stripMetadata") == "true"}
	if tables := c.Query("tables"); tables != "" {
		opts.Tables = strings.Split(tables, ",")
	}

	snap, err := h.service.Export(c.Context(), opts)
	if err != nil {
		return errs.Render(c, l, "Snapshot export failed", err)
	}
	return c.JSON(snap)
}

// HandleImport folds a snapshot into the local store.
// @Summary Import Snapshot
// @Description Import a snapshot from another device. Rows already mapped through merge entries follow the chosen strategy; unmapped rows are inserted under freshly minted local ids and recorded, so re-importing the same snapshot never duplicates. Row failures are listed in the report, not raised.
// @Tags sync
// @Accept json
// @Produce json
// @Param strategy query string false "Conflict strategy" Enums(skip, overwrite, merge) default(merge)
// @Param dryRun query boolean false "Plan the import without writing"
// @Param snapshot body sync.Snapshot true "Snapshot payload"
// @Success 200 {object} sync.Report "Import Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var snap Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return errs.Render(c, l, "Snapshot payload rejected", errs.Invalid("snapshot", "body", "malformed JSON payload"))
	}

	report, err := h.service.Import(c.Context(), &snap, ImportOptions{
		Strategy:       c.Query("strategy"),
		DryRun:         c.Query("dryRun") == "true",
		NoMergeEntries: c.Query("noMergeEntries") == "true",
	})
	if err != nil {
		return errs.Render(c, l, "Snapshot import failed", err)
	}
	return c.JSON(report)
}
