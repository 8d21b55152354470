package event

import (
	"context"
	"strings"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service handles events, their stage trees and their scores.
type Service struct {
	store   store.Store
	engine  *upsert.Engine
	scoring *scoring.Registry
	trees   *tree.Builder
	logger  *zap.Logger
}

// NewService creates a new event service.
func NewService(s store.Store, engine *upsert.Engine, registry *scoring.Registry, logger *zap.Logger) *Service {
	return &Service{
		store:   s,
		engine:  engine,
		scoring: registry,
		trees:   tree.NewBuilder(logger),
		logger:  logger,
	}
}

// CreateEventWithDetails creates an event at a registered venue format,
// generates its stage tree 1:1 from the venue's mirrored tree and links the
// given participants. Stage content and scores supplied inline are written
// after the tree exists. A client-minted id is kept, so replaying the same
// create converges instead of duplicating.
func (s *Service) CreateEventWithDetails(ctx context.Context, input EventInput) (*EventDetails, error) {
	if input.VenueEventFormatID == "" {
		return nil, errs.Invalid("event", "venueEventFormatId", "must not be empty")
	}
	if _, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(input.VenueEventFormatID)); err != nil {
		return nil, err
	}
	if err := validStatus(input.Status); err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := input.Status
	if status == "" {
		status = schema.EventStatusScheduled
	}
	record := store.RowOf(schema.Event{
		ID:                 id,
		VenueEventFormatID: input.VenueEventFormatID,
		Status:             status,
		StartsAt:           input.StartsAt,
		Name:               utils.TextPtr(input.Name),
		Notes:              utils.TextPtr(input.Notes),
		Location:           utils.TextPtr(input.Location),
		Metadata:           datatypes.JSONMap(input.Metadata),
	})
	res, err := s.engine.Upsert(ctx, schema.TableEvents, record, nil)
	if err != nil {
		return nil, err
	}

	stageSet, err := s.mirrorVenueStages(ctx, res.ID, input.VenueEventFormatID)
	if err != nil {
		return nil, err
	}

	var linkSet upsert.ChangeSet
	if input.ParticipantIDs != nil {
		linkSet, err = s.linkParticipants(ctx, res.ID, input.ParticipantIDs)
		if err != nil {
			return nil, err
		}
	}

	// initial content and scores land on the generated tree without
	// reshaping it
	if input.Stages != nil {
		scope, err := s.newStageScope(ctx, res.ID, input.VenueEventFormatID)
		if err != nil {
			return nil, err
		}
		if err := s.overlayStageContent(ctx, scope, "", input.Stages, 1); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Created event",
		zap.String("eventId", res.ID),
		zap.String("venueEventFormatId", input.VenueEventFormatID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("stages", stageSet.Total()),
		zap.Int("participants", linkSet.Total()))

	return s.GetEventDetails(ctx, res.ID)
}

// UpsertEventWithDetails reconciles a full event aggregate in one call: the
// event row, the participant link set, the stage tree and the per-stage
// score sets. Collections follow the nil-leaves-alone convention, supplied
// trees are replace-sets per parent, and every step is idempotent, so a
// partially applied call can simply be retried. An unknown id with a venue
// format reference is restored rather than rejected; that is how events
// created on another device arrive.
func (s *Service) UpsertEventWithDetails(ctx context.Context, id string, input EventInput) (*EventResult, error) {
	if id == "" {
		return nil, errs.Invalid("event", "id", "must not be empty")
	}
	if input.ID != "" && input.ID != id {
		return nil, errs.Invalid("event", "id", "body and path disagree")
	}
	if err := validStatus(input.Status); err != nil {
		return nil, err
	}

	existing, err := s.store.SelectOne(ctx, schema.TableEvents, store.ByID(id))
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	registrationID := input.VenueEventFormatID
	if existing != nil {
		persisted := utils.ToString(existing["venue_event_format_id"])
		if registrationID == "" {
			registrationID = persisted
		} else if registrationID != persisted {
			return nil, errs.Invalid("event", "venueEventFormatId", "an event cannot move to another venue format")
		}
	}
	if registrationID == "" {
		return nil, errs.Invalid("event", "venueEventFormatId", "must not be empty")
	}
	if _, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(registrationID)); err != nil {
		return nil, err
	}

	row := store.Row{"id": id, "venue_event_format_id": registrationID}
	if input.Status != "" {
		row["status"] = input.Status
	} else if existing == nil {
		row["status"] = schema.EventStatusScheduled
	}
	if input.StartsAt != nil {
		row["starts_at"] = *input.StartsAt
	}
	if input.Name != "" {
		row["name"] = input.Name
	}
	if input.Notes != "" {
		row["notes"] = input.Notes
	}
	if input.Location != "" {
		row["location"] = input.Location
	}
	if input.Metadata != nil {
		row["metadata"] = input.Metadata
	}
	res, err := s.engine.Upsert(ctx, schema.TableEvents, row, nil)
	if err != nil {
		return nil, err
	}

	result := &EventResult{}

	// a restored event gets its tree before any stage content lands on it
	if res.Outcome == upsert.Inserted && input.Stages == nil {
		result.Stages, err = s.mirrorVenueStages(ctx, id, registrationID)
		if err != nil {
			return nil, err
		}
	}

	if input.ParticipantIDs != nil {
		result.Participants, err = s.linkParticipants(ctx, id, input.ParticipantIDs)
		if err != nil {
			return nil, err
		}
	}

	if input.Stages != nil {
		sets, err := s.reconcileStageContent(ctx, id, registrationID, input.Stages)
		if err != nil {
			return nil, err
		}
		result.Stages = sets.stages
		result.Scores = sets.scores
	}

	s.logger.Info("Upserted event",
		zap.String("eventId", id),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("participants", result.Participants.Total()),
		zap.Int("stages", result.Stages.Total()),
		zap.Int("scores", result.Scores.Total()))

	eventRow, err := s.store.SelectOne(ctx, schema.TableEvents, store.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := store.ScanRow(eventRow, &result.Event); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEventDetails returns an event with its registration and format
// resolved, its participants and its stage tree rebuilt from one
// normalized three-level row set with scores attached per stage.
func (s *Service) GetEventDetails(ctx context.Context, id string) (*EventDetails, error) {
	row, err := s.store.SelectOne(ctx, schema.TableEvents, store.ByID(id))
	if err != nil {
		return nil, err
	}
	details := &EventDetails{}
	if err := store.ScanRow(row, &details.Event); err != nil {
		return nil, err
	}

	regRow, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(details.VenueEventFormatID))
	if err == nil {
		details.Registration = &schema.VenueEventFormat{}
		if err := store.ScanRow(regRow, details.Registration); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	if details.Registration != nil {
		formatRow, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(details.Registration.EventFormatID))
		if err == nil {
			details.EventFormat = &schema.EventFormat{}
			if err := store.ScanRow(formatRow, details.EventFormat); err != nil {
				return nil, err
			}
		} else if !errs.IsNotFound(err) {
			return nil, err
		}
	}

	details.Participants, err = s.eventParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	layers, err := s.loadStageLayers(ctx, id, details.VenueEventFormatID)
	if err != nil {
		return nil, err
	}

	forest := s.trees.BuildForest(normalizedStageRows(layers), tree.Spec{
		Levels: []tree.Level{
			{Name: "event", IDColumn: "id", ParentColumn: "parent_id"},
			{Name: "venue", IDColumn: "venue_stage_id", ParentColumn: "venue_stage_parent_id"},
			{Name: "format", IDColumn: "format_stage_id", ParentColumn: "format_stage_parent_id"},
		},
		Children: []tree.ChildSet{{Name: "scores", IDColumn: "score_id", Prefix: "score_"}},
	})
	details.Stages, err = eventStageNodes(forest, layers)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ListEvents returns events, optionally narrowed to one venue format or
// status, newest first.
func (s *Service) ListEvents(ctx context.Context, filter ListFilter) ([]schema.Event, error) {
	q := store.NewQuery().OrderBy("created_at", true)
	if filter.VenueEventFormatID != "" {
		q = q.Eq("venue_event_format_id", filter.VenueEventFormatID)
	}
	if filter.Status != "" {
		if err := validStatus(filter.Status); err != nil {
			return nil, err
		}
		q = q.Eq("status", filter.Status)
	}
	rows, err := s.store.Select(ctx, schema.TableEvents, q)
	if err != nil {
		return nil, err
	}
	events := make([]schema.Event, 0, len(rows))
	for _, row := range rows {
		var ev schema.Event
		if err := store.ScanRow(row, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// DeleteEvent removes an event with its stage tree, scores and participant
// links.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.store.SelectOne(ctx, schema.TableEvents, store.ByID(id)); err != nil {
		return err
	}

	stageRows, err := s.store.Select(ctx, schema.TableEventStages, store.NewQuery().Eq("event_id", id))
	if err != nil {
		return err
	}
	for _, row := range stageRows {
		stageID := utils.ToString(row["id"])
		if stageID == "" {
			continue
		}
		if _, err := s.store.Delete(ctx, schema.TableScores,
			store.NewQuery().Eq("event_stage_id", stageID)); err != nil {
			return err
		}
	}
	if _, err := s.store.Delete(ctx, schema.TableEventStages, store.NewQuery().Eq("event_id", id)); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, schema.TableEventParticipants, store.NewQuery().Eq("event_id", id)); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, schema.TableEvents, store.ByID(id)); err != nil {
		return err
	}
	s.logger.Info("Deleted event", zap.String("eventId", id), zap.Int("stages", len(stageRows)))
	return nil
}

// linkParticipants makes the given participants the event's complete set.
// Every id must exist; links are matched by (event, participant) so
// re-linking keeps row identity.
func (s *Service) linkParticipants(ctx context.Context, eventID string, participantIDs []string) (upsert.ChangeSet, error) {
	var set upsert.ChangeSet

	ids := make([]string, 0, len(participantIDs))
	seen := map[string]bool{}
	for _, pid := range participantIDs {
		pid = strings.TrimSpace(pid)
		if pid == "" || seen[pid] {
			continue
		}
		seen[pid] = true
		ids = append(ids, pid)
	}
	for _, pid := range ids {
		if _, err := s.store.SelectOne(ctx, schema.TableParticipants, store.ByID(pid)); err != nil {
			return set, err
		}
	}

	rows := make([]store.Row, 0, len(ids))
	for _, pid := range ids {
		rows = append(rows, store.Row{"event_id": eventID, "participant_id": pid})
	}
	_, set, err := s.engine.ReplaceChildren(ctx, upsert.ReplaceSpec{
		Table: schema.TableEventParticipants,
		Scope: store.NewQuery().Eq("event_id", eventID),
		Rows:  rows,
		AltFor: func(row store.Row) *store.Query {
			return store.NewQuery().
				Eq("event_id", eventID).
				Eq("participant_id", row["participant_id"])
		},
	})
	return set, err
}

// eventParticipants loads the participants linked to an event, name order.
func (s *Service) eventParticipants(ctx context.Context, eventID string) ([]schema.Participant, error) {
	links, err := s.store.Select(ctx, schema.TableEventParticipants,
		store.NewQuery().Eq("event_id", eventID))
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(links))
	for _, link := range links {
		if pid := utils.ToString(link["participant_id"]); pid != "" {
			ids = append(ids, pid)
		}
	}
	rows, err := s.store.Select(ctx, schema.TableParticipants,
		store.NewQuery().In("id", utils.ToAnySlice(ids)...).OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	participants := make([]schema.Participant, 0, len(rows))
	for _, row := range rows {
		var p schema.Participant
		if err := store.ScanRow(row, &p); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func validStatus(status string) error {
	switch status {
	case "", schema.EventStatusScheduled, schema.EventStatusActive, schema.EventStatusCompleted:
		return nil
	}
	return errs.Invalid("event", "status",
		"must be one of "+schema.EventStatusScheduled+", "+schema.EventStatusActive+", "+schema.EventStatusCompleted)
}
