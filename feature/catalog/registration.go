package catalog

import (
	"context"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// RegisterVenueEventFormat binds an event format to a venue and snapshots
// the format's stage tree into venue stage rows: one mirror per format
// stage, same parents, same numbers. The snapshot is structural; names and
// metadata on mirror rows belong to the venue and start empty, with the
// format's values merged in on every read. Re-registering reconciles the
// mirror against the format's current tree without touching venue edits.
// The call is idempotent.
func (s *Service) RegisterVenueEventFormat(ctx context.Context, venueID, formatID string, input RegistrationInput) (*RegistrationDetails, error) {
	if _, err := s.store.SelectOne(ctx, schema.TableVenues, store.ByID(venueID)); err != nil {
		return nil, err
	}
	if _, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(formatID)); err != nil {
		return nil, err
	}

	record := store.RowOf(schema.VenueEventFormat{
		VenueID:         venueID,
		EventFormatID:   formatID,
		Name:            utils.TextPtr(input.Name),
		Notes:           utils.TextPtr(input.Notes),
		Location:        utils.TextPtr(input.Location),
		DurationMinutes: input.DurationMinutes,
		MinTeamSize:     input.MinTeamSize,
		MaxTeamSize:     input.MaxTeamSize,
		Metadata:        datatypes.JSONMap(input.Metadata),
	})
	res, err := s.engine.Upsert(ctx, schema.TableVenueEventFormats, record,
		store.NewQuery().Eq("venue_id", venueID).Eq("event_format_id", formatID))
	if err != nil {
		return nil, err
	}

	set, err := s.mirrorFormatStages(ctx, res.ID, formatID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Registered event format at venue",
		zap.String("venueId", venueID),
		zap.String("eventFormatId", formatID),
		zap.String("registrationId", res.ID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("stages", set.Total()))

	return s.GetVenueEventFormatDetails(ctx, res.ID)
}

// GetVenueEventFormatDetails returns a registration with its venue and
// format resolved, the override settings collapsed into effective values
// and the mirrored stage tree rebuilt.
func (s *Service) GetVenueEventFormatDetails(ctx context.Context, id string) (*RegistrationDetails, error) {
	row, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(id))
	if err != nil {
		return nil, err
	}
	details := &RegistrationDetails{}
	if err := store.ScanRow(row, &details.VenueEventFormat); err != nil {
		return nil, err
	}

	venueRow, err := s.store.SelectOne(ctx, schema.TableVenues, store.ByID(details.VenueID))
	if err == nil {
		details.Venue = &schema.Venue{}
		if err := store.ScanRow(venueRow, details.Venue); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	formatRow, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(details.EventFormatID))
	if err == nil {
		details.EventFormat = &schema.EventFormat{}
		if err := store.ScanRow(formatRow, details.EventFormat); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	details.Effective = EffectiveSettings{
		DurationMinutes: details.DurationMinutes,
		MinTeamSize:     details.MinTeamSize,
		MaxTeamSize:     details.MaxTeamSize,
	}
	if details.EventFormat != nil {
		details.Effective = EffectiveSettings{
			DurationMinutes: orInt(details.DurationMinutes, details.EventFormat.DurationMinutes),
			MinTeamSize:     orInt(details.MinTeamSize, details.EventFormat.MinTeamSize),
			MaxTeamSize:     orInt(details.MaxTeamSize, details.EventFormat.MaxTeamSize),
		}
	}

	stageRows, err := s.store.Select(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", id).OrderBy("number", false))
	if err != nil {
		return nil, err
	}
	sourceRows, err := s.store.Select(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", details.EventFormatID))
	if err != nil {
		return nil, err
	}
	sources := make(map[string]store.Row, len(sourceRows))
	for _, row := range sourceRows {
		sources[utils.ToString(row["id"])] = row
	}

	forest := s.trees.BuildForest(stageRows, tree.Spec{
		Levels: []tree.Level{{Name: "venue", IDColumn: "id", ParentColumn: "parent_id"}},
	})
	details.Stages, err = venueStageNodes(forest, sources)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ListVenueRegistrations returns every format registered at a venue.
func (s *Service) ListVenueRegistrations(ctx context.Context, venueID string) ([]schema.VenueEventFormat, error) {
	if _, err := s.store.SelectOne(ctx, schema.TableVenues, store.ByID(venueID)); err != nil {
		return nil, err
	}
	rows, err := s.store.Select(ctx, schema.TableVenueEventFormats,
		store.NewQuery().Eq("venue_id", venueID).OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}
	regs := make([]schema.VenueEventFormat, 0, len(rows))
	for _, row := range rows {
		var reg schema.VenueEventFormat
		if err := store.ScanRow(row, &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// mirrorFormatStages reconciles a registration's stage mirror against the
// format's tree. The mirror is flat 1:1: each venue row is identified by
// its source format stage, parents are resolved top-down through the
// format forest, and venue rows whose source stage is gone are removed.
func (s *Service) mirrorFormatStages(ctx context.Context, registrationID, formatID string) (upsert.ChangeSet, error) {
	var set upsert.ChangeSet

	formatRows, err := s.store.Select(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", formatID).OrderBy("number", false))
	if err != nil {
		return set, err
	}
	forest := s.trees.BuildForest(formatRows, tree.Spec{
		Levels: []tree.Level{{Name: "format", IDColumn: "id", ParentColumn: "parent_id"}},
	})

	existing, err := s.store.Select(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", registrationID))
	if err != nil {
		return set, err
	}
	venueBySource := make(map[string]store.Row, len(existing))
	for _, row := range existing {
		if key := utils.ToString(row["event_format_stage_id"]); key != "" {
			venueBySource[key] = row
		}
	}

	kept := make(map[string]bool, len(formatRows))
	for _, root := range forest {
		if err := s.mirrorNode(ctx, registrationID, nil, root, venueBySource, kept, &set); err != nil {
			return set, err
		}
	}

	for _, row := range existing {
		id := utils.ToString(row["id"])
		if id == "" || kept[id] {
			continue
		}
		if _, err := s.store.Delete(ctx, schema.TableVenueEventFormatStages, store.ByID(id)); err != nil {
			return set, err
		}
		set.Pruned++
	}
	return set, nil
}

// mirrorNode upserts one mirror row and recurses into the format node's
// children with the mirror's id as their parent. Only structural columns
// are written; whatever the venue set on a matched mirror stays.
func (s *Service) mirrorNode(ctx context.Context, registrationID string, parentID any, node *tree.Node, venueBySource map[string]store.Row, kept map[string]bool, set *upsert.ChangeSet) error {
	var src schema.EventFormatStage
	if err := store.ScanRow(node.Row, &src); err != nil {
		return err
	}

	row := store.RowOf(schema.VenueEventFormatStage{
		VenueEventFormatID: registrationID,
		EventFormatStageID: src.ID,
		Number:             src.Number,
	})
	row["parent_id"] = parentID

	res, err := s.engine.Upsert(ctx, schema.TableVenueEventFormatStages, row,
		store.NewQuery().
			Eq("venue_event_format_id", registrationID).
			Eq("event_format_stage_id", src.ID))
	if err != nil {
		return err
	}
	kept[res.ID] = true

	switch res.Outcome {
	case upsert.Inserted:
		set.Inserted++
	case upsert.Updated:
		set.Updated++
	case upsert.Unchanged:
		set.Unchanged++
	}

	// a mirror promoted back to root keeps a stale parent otherwise: the
	// engine's diff never writes nil
	if parentID == nil {
		if prior, ok := venueBySource[src.ID]; ok && utils.ToString(prior["parent_id"]) != "" {
			if err := s.store.Update(ctx, schema.TableVenueEventFormatStages, res.ID,
				store.Row{"parent_id": nil}); err != nil {
				return err
			}
		}
	}

	for _, sub := range node.SubNodes {
		if err := s.mirrorNode(ctx, registrationID, res.ID, sub, venueBySource, kept, set); err != nil {
			return err
		}
	}
	return nil
}

// venueStageNodes converts a built forest into the response tree, joining
// each mirror with its source stage and computing the merged metadata view.
func venueStageNodes(nodes []*tree.Node, sources map[string]store.Row) ([]VenueStageNode, error) {
	out := make([]VenueStageNode, 0, len(nodes))
	for _, n := range nodes {
		var stage VenueStageNode
		if err := store.ScanRow(n.Row, &stage.VenueEventFormatStage); err != nil {
			return nil, err
		}
		if src, ok := sources[stage.EventFormatStageID]; ok {
			stage.Format = &schema.EventFormatStage{}
			if err := store.ScanRow(src, stage.Format); err != nil {
				return nil, err
			}
			stage.Merged = utils.MergeMaps(map[string]any(stage.Format.Metadata), map[string]any(stage.Metadata))
		} else {
			stage.Merged = map[string]any(stage.Metadata)
		}
		subs, err := venueStageNodes(n.SubNodes, sources)
		if err != nil {
			return nil, err
		}
		stage.SubStages = subs
		out = append(out, stage)
	}
	return out, nil
}

// orInt prefers the override when it is set.
func orInt(override, base *int) *int {
	if override != nil {
		return override
	}
	return base
}
