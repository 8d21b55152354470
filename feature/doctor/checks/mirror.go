package checks

import (
	"context"
	"fmt"

	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/utils"
)

// StageMirror verifies that every event's stage tree is a faithful copy of
// its venue format's tree: same node count, every stage bound to a venue
// stage of the same number, and parent edges mirroring the venue edges. It
// returns one finding per fault and the number of events checked.
func StageMirror(ctx context.Context, s store.Store) ([]string, int, error) {
	events, err := s.Select(ctx, schema.TableEvents, store.NewQuery())
	if err != nil {
		return nil, 0, err
	}

	var faults []string
	for _, ev := range events {
		eventID := utils.ToString(ev["id"])
		regID := utils.ToString(ev["venue_event_format_id"])

		venueRows, err := s.Select(ctx, schema.TableVenueEventFormatStages,
			store.NewQuery().Eq("venue_event_format_id", regID))
		if err != nil {
			return nil, 0, err
		}
		eventRows, err := s.Select(ctx, schema.TableEventStages,
			store.NewQuery().Eq("event_id", eventID))
		if err != nil {
			return nil, 0, err
		}
		faults = append(faults, compareTrees(eventID, venueRows, eventRows)...)
	}
	return faults, len(events), nil
}

func compareTrees(eventID string, venueRows, eventRows []store.Row) []string {
	var faults []string
	if len(venueRows) != len(eventRows) {
		faults = append(faults, fmt.Sprintf(
			"event %s: %d stages, venue format has %d", eventID, len(eventRows), len(venueRows)))
	}

	venueByID := make(map[string]store.Row, len(venueRows))
	for _, row := range venueRows {
		venueByID[utils.ToString(row["id"])] = row
	}
	eventByID := make(map[string]store.Row, len(eventRows))
	for _, row := range eventRows {
		eventByID[utils.ToString(row["id"])] = row
	}

	for _, row := range eventRows {
		stageID := utils.ToString(row["id"])
		ref := utils.ToString(row["venue_event_format_stage_id"])
		venueRow, ok := venueByID[ref]
		if !ok {
			faults = append(faults, fmt.Sprintf(
				"event %s stage %s: bound to unknown venue stage %s", eventID, stageID, ref))
			continue
		}
		if utils.ToInt(row["number"]) != utils.ToInt(venueRow["number"]) {
			faults = append(faults, fmt.Sprintf(
				"event %s stage %s: number %d, venue stage has %d",
				eventID, stageID, utils.ToInt(row["number"]), utils.ToInt(venueRow["number"])))
		}

		venueParent := utils.ToString(venueRow["parent_id"])
		eventParent := utils.ToString(row["parent_id"])
		switch {
		case venueParent == "" && eventParent != "":
			faults = append(faults, fmt.Sprintf(
				"event %s stage %s: root in the venue tree but has a parent", eventID, stageID))
		case venueParent != "":
			parentRow, ok := eventByID[eventParent]
			if !ok || utils.ToString(parentRow["venue_event_format_stage_id"]) != venueParent {
				faults = append(faults, fmt.Sprintf(
					"event %s stage %s: parent edge does not mirror the venue tree", eventID, stageID))
			}
		}
	}
	return faults
}
