package event

import (
	"context"

	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/utils"
)

// ScoreEvent runs the sport's scoring method over an event's leaf-stage
// entries and returns ranked per-participant aggregates plus stats. Points
// and score types are rederived from the raw values at scoring time, so
// results stay honest even when stage metadata changed after entry.
func (s *Service) ScoreEvent(ctx context.Context, eventID string) (*EventResults, error) {
	eventRow, err := s.store.SelectOne(ctx, schema.TableEvents, store.ByID(eventID))
	if err != nil {
		return nil, err
	}
	registrationID := utils.ToString(eventRow["venue_event_format_id"])

	regRow, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(registrationID))
	if err != nil {
		return nil, err
	}
	formatRow, err := s.store.SelectOne(ctx, schema.TableEventFormats,
		store.ByID(utils.ToString(regRow["event_format_id"])))
	if err != nil {
		return nil, err
	}
	method, err := s.scoring.MethodForScoreFormat(ctx, utils.ToString(formatRow["score_format_id"]))
	if err != nil {
		return nil, err
	}

	layers, err := s.loadStageLayers(ctx, eventID, registrationID)
	if err != nil {
		return nil, err
	}
	entries, err := leafStageEntries(layers, method)
	if err != nil {
		return nil, err
	}

	score := method.ScoreEvent(entries)
	return &EventResults{
		EventID:            eventID,
		Method:             method.Name(),
		HigherPointsBetter: method.HigherPointsBetter(),
		Participants:       score.Participants,
		Stats:              score.Stats,
	}, nil
}

// leafStageEntries turns the scores at leaf stages into method entries.
// Parent stages only group their children; counting them too would double
// every value.
func leafStageEntries(layers *stageLayers, method scoring.Method) ([]scoring.StageEntry, error) {
	hasChildren := map[string]bool{}
	for _, row := range layers.stages {
		if parent := utils.ToString(row["parent_id"]); parent != "" {
			hasChildren[parent] = true
		}
	}

	var entries []scoring.StageEntry
	for _, stageRow := range layers.stages {
		stageID := utils.ToString(stageRow["id"])
		if stageID == "" || hasChildren[stageID] {
			continue
		}

		var stage schema.EventStage
		if err := store.ScanRow(stageRow, &stage); err != nil {
			return nil, err
		}
		merged, err := layeredMetadata(layers.venues, layers.formats, stage.VenueEventFormatStageID, stage.Metadata)
		if err != nil {
			return nil, err
		}
		stageCtx := scoring.StageContext{StageID: stageID, Number: stage.Number, Metadata: merged}

		for _, scoreRow := range layers.scores[stageID] {
			if scoreRow["raw_value"] == nil {
				continue
			}
			raw := utils.ToFloat(scoreRow["raw_value"])
			entries = append(entries, scoring.StageEntry{
				Stage:         stageCtx,
				ParticipantID: utils.ToString(scoreRow["participant_id"]),
				RawValue:      raw,
				Points:        method.ValueToPoints(raw),
				ScoreType:     method.ValueToScoreType(raw, stageCtx),
				Completed:     utils.ToBool(scoreRow["completed"]),
			})
		}
	}
	return entries, nil
}
