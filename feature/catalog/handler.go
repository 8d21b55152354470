package catalog

import (
	"scorebook/core/errs"
	"scorebook/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sports", h.HandleCreateSport)
	app.Get("/sports", h.HandleListSports)
	app.Get("/sports/:id", h.HandleGetSport)

	app.Put("/formats", h.HandleUpsertFormat)
	app.Get("/formats/:id", h.HandleGetFormat)
	app.Delete("/formats/:id", h.HandleDeleteFormat)

	app.Post("/venues", h.HandleCreateVenue)
	app.Get("/venues", h.HandleListVenues)
	app.Get("/venues/:venueId/formats", h.HandleListVenueRegistrations)
	app.Post("/venues/:venueId/formats/:formatId", h.HandleRegisterVenueFormat)
	app.Get("/venue-formats/:id", h.HandleGetVenueFormat)
}

// HandleCreateSport creates a sport.
// @Summary Create Sport
// @Description Create a sport under a unique name. A registered scoring plugin of the same name has its score formats wired up alongside.
// @Tags catalog
// @Accept json
// @Produce json
// @Param sport body catalog.SportInput true "Sport"
// @Success 201 {object} schema.Sport "Created Sport"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Name Taken"
// @Router /sports [post]
func (h *Handler) HandleCreateSport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input SportInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Sport payload rejected", errs.Invalid("sport", "body", "malformed JSON payload"))
	}

	sport, err := h.service.CreateSport(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Sport creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sport)
}

// HandleListSports lists all sports.
// @Summary List Sports
// @Description List all sports in name order.
// @Tags catalog
// @Produce json
// @Success 200 {array} schema.Sport "Sports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sports [get]
func (h *Handler) HandleListSports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sports, err := h.service.ListSports(c.Context())
	if err != nil {
		return errs.Render(c, l, "Sport listing failed", err)
	}
	return c.JSON(sports)
}

// HandleGetSport returns one sport.
// @Summary Get Sport
// @Description Get a sport by id.
// @Tags catalog
// @Produce json
// @Param id path string true "Sport ID"
// @Success 200 {object} schema.Sport "Sport"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sports/{id} [get]
func (h *Handler) HandleGetSport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, err := h.service.GetSport(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Sport lookup failed", err)
	}
	return c.JSON(sport)
}

// HandleUpsertFormat reconciles an event format and its stage tree.
// @Summary Upsert Event Format
// @Description Upsert an event format together with its complete stage tree. Stages match by id or by sibling number; stages missing from the payload are pruned with their subtrees.
// @Tags catalog
// @Accept json
// @Produce json
// @Param format body catalog.FormatInput true "Format with stage tree"
// @Success 200 {object} catalog.FormatResult "Reconciled Format"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Reference"
// @Router /formats [put]
func (h *Handler) HandleUpsertFormat(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input FormatInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Format payload rejected", errs.Invalid("event_format", "body", "malformed JSON payload"))
	}

	result, err := h.service.UpsertEventFormatWithDetails(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Format upsert failed", err)
	}
	return c.JSON(result)
}

// HandleGetFormat returns an event format with its stage tree.
// @Summary Get Event Format
// @Description Get an event format with its sport, score format and rebuilt stage tree.
// @Tags catalog
// @Produce json
// @Param id path string true "Event Format ID"
// @Success 200 {object} catalog.FormatDetails "Format Details"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /formats/{id} [get]
func (h *Handler) HandleGetFormat(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	details, err := h.service.GetEventFormatDetails(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Format lookup failed", err)
	}
	return c.JSON(details)
}

// HandleDeleteFormat removes an event format and its stage tree.
// @Summary Delete Event Format
// @Description Delete an event format and its stages. Formats registered at a venue are refused.
// @Tags catalog
// @Produce json
// @Param id path string true "Event Format ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Still Registered"
// @Router /formats/{id} [delete]
func (h *Handler) HandleDeleteFormat(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.DeleteEventFormat(c.Context(), c.Params("id")); err != nil {
		return errs.Render(c, l, "Format deletion failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateVenue creates a venue.
// @Summary Create Venue
// @Description Create a venue.
// @Tags catalog
// @Accept json
// @Produce json
// @Param venue body catalog.VenueInput true "Venue"
// @Success 201 {object} schema.Venue "Created Venue"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /venues [post]
func (h *Handler) HandleCreateVenue(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input VenueInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Venue payload rejected", errs.Invalid("venue", "body", "malformed JSON payload"))
	}

	venue, err := h.service.CreateVenue(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Venue creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(venue)
}

// HandleListVenues lists all venues.
// @Summary List Venues
// @Description List all venues in name order.
// @Tags catalog
// @Produce json
// @Success 200 {array} schema.Venue "Venues"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /venues [get]
func (h *Handler) HandleListVenues(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	venues, err := h.service.ListVenues(c.Context())
	if err != nil {
		return errs.Render(c, l, "Venue listing failed", err)
	}
	return c.JSON(venues)
}

// HandleListVenueRegistrations lists the formats registered at a venue.
// @Summary List Venue Registrations
// @Description List every event format registered at a venue.
// @Tags catalog
// @Produce json
// @Param venueId path string true "Venue ID"
// @Success 200 {array} schema.VenueEventFormat "Registrations"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /venues/{venueId}/formats [get]
func (h *Handler) HandleListVenueRegistrations(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	regs, err := h.service.ListVenueRegistrations(c.Context(), c.Params("venueId"))
	if err != nil {
		return errs.Render(c, l, "Registration listing failed", err)
	}
	return c.JSON(regs)
}

// HandleRegisterVenueFormat registers an event format at a venue.
// @Summary Register Venue Format
// @Description Register an event format at a venue with optional overrides, snapshotting the format's stage tree 1:1 into venue stages.
// @Tags catalog
// @Accept json
// @Produce json
// @Param venueId path string true "Venue ID"
// @Param formatId path string true "Event Format ID"
// @Param overrides body catalog.RegistrationInput false "Overrides"
// @Success 200 {object} catalog.RegistrationDetails "Registration Details"
// @Failure 404 {object} map[string]string "Unknown Venue or Format"
// @Router /venues/{venueId}/formats/{formatId} [post]
func (h *Handler) HandleRegisterVenueFormat(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input RegistrationInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return errs.Render(c, l, "Registration payload rejected", errs.Invalid("venue_event_format", "body", "malformed JSON payload"))
		}
	}

	details, err := h.service.RegisterVenueEventFormat(c.Context(), c.Params("venueId"), c.Params("formatId"), input)
	if err != nil {
		return errs.Render(c, l, "Venue registration failed", err)
	}
	return c.JSON(details)
}

// HandleGetVenueFormat returns a venue registration with its stage tree.
// @Summary Get Venue Format
// @Description Get a venue registration with effective settings and the mirrored stage tree.
// @Tags catalog
// @Produce json
// @Param id path string true "Venue Event Format ID"
// @Success 200 {object} catalog.RegistrationDetails "Registration Details"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /venue-formats/{id} [get]
func (h *Handler) HandleGetVenueFormat(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	details, err := h.service.GetVenueEventFormatDetails(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Venue format lookup failed", err)
	}
	return c.JSON(details)
}
