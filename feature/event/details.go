package event

import (
	"context"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/utils"
)

// stageLayers bundles the three mirrored levels of an event's tree plus its
// scores, keyed for joining.
type stageLayers struct {
	stages  []store.Row            // event stage rows, number order
	venues  map[string]store.Row   // venue stage id -> row
	formats map[string]store.Row   // format stage id -> row
	scores  map[string][]store.Row // event stage id -> score rows
}

// loadStageLayers reads an event's stage rows, their scores and the venue
// and format layers underneath. A dangling registration leaves the deeper
// layers empty rather than failing the read.
func (s *Service) loadStageLayers(ctx context.Context, eventID, registrationID string) (*stageLayers, error) {
	layers := &stageLayers{
		venues:  map[string]store.Row{},
		formats: map[string]store.Row{},
		scores:  map[string][]store.Row{},
	}

	stages, err := s.store.Select(ctx, schema.TableEventStages,
		store.NewQuery().Eq("event_id", eventID).OrderBy("number", false))
	if err != nil {
		return nil, err
	}
	layers.stages = stages

	stageIDs := make([]string, 0, len(stages))
	for _, row := range stages {
		if id := utils.ToString(row["id"]); id != "" {
			stageIDs = append(stageIDs, id)
		}
	}
	if len(stageIDs) > 0 {
		scoreRows, err := s.store.Select(ctx, schema.TableScores,
			store.NewQuery().In("event_stage_id", utils.ToAnySlice(stageIDs)...).OrderBy("created_at", false))
		if err != nil {
			return nil, err
		}
		for _, row := range scoreRows {
			sid := utils.ToString(row["event_stage_id"])
			layers.scores[sid] = append(layers.scores[sid], row)
		}
	}

	regRow, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(registrationID))
	if errs.IsNotFound(err) {
		return layers, nil
	}
	if err != nil {
		return nil, err
	}

	venueRows, err := s.store.Select(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", registrationID))
	if err != nil {
		return nil, err
	}
	for _, row := range venueRows {
		if id := utils.ToString(row["id"]); id != "" {
			layers.venues[id] = row
		}
	}

	formatRows, err := s.store.Select(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", utils.ToString(regRow["event_format_id"])))
	if err != nil {
		return nil, err
	}
	for _, row := range formatRows {
		if id := utils.ToString(row["id"]); id != "" {
			layers.formats[id] = row
		}
	}
	return layers, nil
}

// normalizedStageRows flattens the three stage levels and the score fan-out
// into the builder's row shape: each row carries the event stage's own
// columns, the venue and format level ids alongside and one score's columns
// under the score_ prefix. A stage without scores contributes one bare row.
func normalizedStageRows(layers *stageLayers) []store.Row {
	flat := make([]store.Row, 0, len(layers.stages))
	for _, stageRow := range layers.stages {
		base := store.Row{}
		for col, val := range stageRow {
			base[col] = val
		}
		if venueRow, ok := layers.venues[utils.ToString(stageRow["venue_event_format_stage_id"])]; ok {
			base["venue_stage_id"] = venueRow["id"]
			base["venue_stage_parent_id"] = venueRow["parent_id"]
			if formatRow, ok := layers.formats[utils.ToString(venueRow["event_format_stage_id"])]; ok {
				base["format_stage_id"] = formatRow["id"]
				base["format_stage_parent_id"] = formatRow["parent_id"]
			}
		}

		scores := layers.scores[utils.ToString(stageRow["id"])]
		if len(scores) == 0 {
			flat = append(flat, base)
			continue
		}
		for _, scoreRow := range scores {
			expanded := store.Row{}
			for col, val := range base {
				expanded[col] = val
			}
			for col, val := range scoreRow {
				expanded["score_"+col] = val
			}
			flat = append(flat, expanded)
		}
	}
	return flat
}

// eventStageNodes converts a built forest into the response tree, resolving
// each stage's venue and format sources and the three-layer metadata view.
func eventStageNodes(nodes []*tree.Node, layers *stageLayers) ([]EventStageNode, error) {
	out := make([]EventStageNode, 0, len(nodes))
	for _, n := range nodes {
		var stage EventStageNode
		if err := store.ScanRow(n.Row, &stage.EventStage); err != nil {
			return nil, err
		}

		var formatMeta, venueMeta map[string]any
		if venueRow, ok := layers.venues[stage.VenueEventFormatStageID]; ok {
			stage.Venue = &schema.VenueEventFormatStage{}
			if err := store.ScanRow(venueRow, stage.Venue); err != nil {
				return nil, err
			}
			venueMeta = map[string]any(stage.Venue.Metadata)
			if formatRow, ok := layers.formats[stage.Venue.EventFormatStageID]; ok {
				stage.Format = &schema.EventFormatStage{}
				if err := store.ScanRow(formatRow, stage.Format); err != nil {
					return nil, err
				}
				formatMeta = map[string]any(stage.Format.Metadata)
			}
		}
		stage.Merged = utils.MergeMaps(utils.MergeMaps(formatMeta, venueMeta), map[string]any(stage.Metadata))

		for _, scoreRow := range n.Children["scores"] {
			var score schema.ParticipantEventStageScore
			if err := store.ScanRow(scoreRow, &score); err != nil {
				return nil, err
			}
			stage.Scores = append(stage.Scores, score)
		}

		subs, err := eventStageNodes(n.SubNodes, layers)
		if err != nil {
			return nil, err
		}
		stage.SubStages = subs
		out = append(out, stage)
	}
	return out, nil
}
