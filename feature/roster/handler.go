package roster

import (
	"scorebook/core/errs"
	"scorebook/core/logger"
	"scorebook/core/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the roster.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/participants", h.HandleUpsertParticipant)
	app.Get("/participants", h.HandleListParticipants)
	app.Get("/participants/:id", h.HandleGetParticipant)

	app.Put("/teams", h.HandleUpsertTeam)
	app.Get("/teams/:id/tree", h.HandleGetTeamTree)
}

// HandleUpsertParticipant creates or updates a participant.
// @Summary Upsert Participant
// @Description Create or update a participant. Offline-minted ids are accepted as-is.
// @Tags roster
// @Accept json
// @Produce json
// @Param participant body roster.ParticipantInput true "Participant"
// @Success 200 {object} schema.Participant "Participant"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /participants [post]
func (h *Handler) HandleUpsertParticipant(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input ParticipantInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Participant payload rejected", errs.Invalid("participant", "body", "malformed JSON payload"))
	}

	participant, err := h.service.UpsertParticipant(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Participant upsert failed", err)
	}
	return c.JSON(participant)
}

// HandleListParticipants lists participants.
// @Summary List Participants
// @Description List participants, optionally filtered by the team flag or a name substring.
// @Tags roster
// @Produce json
// @Param team query boolean false "Only teams (true) or only players (false)"
// @Param name query string false "Name substring"
// @Success 200 {array} schema.Participant "Participants"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /participants [get]
func (h *Handler) HandleListParticipants(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var filter ListFilter
	if team := c.Query("team"); team != "" {
		filter.IsTeam = utils.Ptr(utils.ToBool(team))
	}
	filter.Name = c.Query("name")

	participants, err := h.service.ListParticipants(c.Context(), filter)
	if err != nil {
		return errs.Render(c, l, "Participant listing failed", err)
	}
	return c.JSON(participants)
}

// HandleGetParticipant returns one participant.
// @Summary Get Participant
// @Description Get a participant by id.
// @Tags roster
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} schema.Participant "Participant"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /participants/{id} [get]
func (h *Handler) HandleGetParticipant(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	participant, err := h.service.GetParticipant(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Participant lookup failed", err)
	}
	return c.JSON(participant)
}

// HandleUpsertTeam reconciles a team and its member set.
// @Summary Upsert Team
// @Description Upsert a team together with its complete member set. Members missing from the payload are removed; a nil member list leaves the membership alone.
// @Tags roster
// @Accept json
// @Produce json
// @Param team body roster.TeamInput true "Team with members"
// @Success 200 {object} roster.TeamResult "Reconciled Team"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Member"
// @Router /teams [put]
func (h *Handler) HandleUpsertTeam(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input TeamInput
	if err := c.BodyParser(&input); err != nil {
		return errs.Render(c, l, "Team payload rejected", errs.Invalid("team", "body", "malformed JSON payload"))
	}

	result, err := h.service.UpsertTeamWithMembers(c.Context(), input)
	if err != nil {
		return errs.Render(c, l, "Team upsert failed", err)
	}
	return c.JSON(result)
}

// HandleGetTeamTree returns a team's resolved member tree.
// @Summary Get Team Tree
// @Description Get a team with its members resolved recursively, nested teams included.
// @Tags roster
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} roster.TeamNode "Team Tree"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /teams/{id}/tree [get]
func (h *Handler) HandleGetTeamTree(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	node, err := h.service.GetTeamTree(c.Context(), c.Params("id"))
	if err != nil {
		return errs.Render(c, l, "Team tree lookup failed", err)
	}
	return c.JSON(node)
}
