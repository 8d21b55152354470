package event

import (
	"scorebook/core/errs"
	"scorebook/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the event routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/events", h.HandleCreateEvent)
	app.Get("/events", h.HandleListEvents)
	app.Get("/events/:id", h.HandleGetEvent)
	app.Put("/events/:id", h.HandleUpsertEvent)
	app.Delete("/events/:id", h.HandleDeleteEvent)
	app.Get("/events/:id/results", h.HandleEventResults)
}

// HandleCreateEvent creates an event at a registered venue format.
// @Summary Create Event
// @Description Create an event at a registered venue format. The stage tree is generated 1:1 from the venue's mirrored tree, participants are linked, and inline stage content or scores land on the generated stages.
// @Tags event
// @Accept json
// @Produce json
// @Param event body event.EventInput true "Event"
// @Success 201 {object} event.EventDetails "Created Event"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Reference"
// @Router /events [post]
func (h *Handler) HandleCreateEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Event payload rejected", errs.Invalid("event", "body", "malformed JSON payload"))
	}

	details, err := h.service.CreateEventWithDetails(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Event creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(details)
}

// HandleListEvents lists events.
// @Summary List Events
// @Description List events, optionally narrowed by venue format or status, newest first.
// @Tags event
// @Produce json
// @Param venueFormat query string false "Venue event format ID"
// @Param status query string false "Event status" Enums(scheduled, active, completed)
// @Success 200 {array} schema.Event "Events"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /events [get]
func (h *Handler) HandleListEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	events, err := h.service.ListEvents(c.Context(), ListFilter{
		VenueEventFormatID: c.Query("venueFormat"),
		Status:             c.Query("status"),
	})
	if err != nil {
		return errs.Render(c, l, "Event listing failed", err)
	}
	return c.JSON(events)
}

// HandleGetEvent returns an event with its stage tree and scores.
// @Summary Get Event Details
// @Description Get an event with its registration and format resolved, its participants and its stage tree rebuilt with scores attached per stage.
// @Tags event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} event.EventDetails "Event"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /events/{id} [get]
func (h *Handler) HandleGetEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	details, err := h.service.GetEventDetails(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Event lookup failed", err)
	}
	return c.JSON(details)
}

// HandleUpsertEvent reconciles a full event aggregate.
// @Summary Upsert Event
// @Description Reconcile an event aggregate in one call: the event row, the participant link set, the stage tree and the per-stage score sets. Omitted collections stay untouched; supplied ones are replace-sets. An unknown id with a venue format reference is restored, which is how events created on another device arrive.
// @Tags event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body event.EventInput true "Event aggregate"
// @Success 200 {object} event.EventResult "Reconciled Event"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Reference"
// @Router /events/{id} [put]
func (h *Handler) HandleUpsertEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Event payload rejected", errs.Invalid("event", "body", "malformed JSON payload"))
	}

	result, err := h.service.UpsertEventWithDetails(c.Context(), c.Params("id"), input)
	if err != nil {
		return errs.Render(c, l, "Event upsert failed", err)
	}
	return c.JSON(result)
}

// HandleDeleteEvent removes an event.
// @Summary Delete Event
// @Description Delete an event with its stage tree, scores and participant links.
// @Tags event
// @Produce json
// @Param id path string true "Event ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /events/{id} [delete]
func (h *Handler) HandleDeleteEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.DeleteEvent(c.Context(), c.Params("id")); err != nil {
		return errs.Render(c, l, "Event deletion failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleEventResults scores an event.
// @Summary Get Event Results
// @Description Run the sport's scoring method over the event's completed leaf-stage entries and return ranked per-participant aggregates plus stats.
// @Tags event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} event.EventResults "Results"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /events/{id}/results [get]
func (h *Handler) HandleEventResults(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	results, err := h.service.ScoreEvent(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Event scoring failed", err)
	}
	return c.JSON(results)
}
