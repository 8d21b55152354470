package checks

import (
	"context"
	"fmt"

	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/utils"
)

// Orphans finds rows whose owner is gone. The store has no database-level
// foreign keys (snapshot imports need to write rows in any state), so this
// is the check that keeps that freedom honest: scores must sit on an
// existing stage and participant, stages on an existing event, and team
// members on existing participants.
func Orphans(ctx context.Context, s store.Store) ([]string, error) {
	eventIDs, err := idSet(ctx, s, schema.TableEvents)
	if err != nil {
		return nil, err
	}
	stageIDs, err := idSet(ctx, s, schema.TableEventStages)
	if err != nil {
		return nil, err
	}
	participantIDs, err := idSet(ctx, s, schema.TableParticipants)
	if err != nil {
		return nil, err
	}

	var findings []string

	scores, err := s.Select(ctx, schema.TableScores, store.NewQuery())
	if err != nil {
		return nil, err
	}
	for _, row := range scores {
		id := utils.ToString(row["id"])
		if stage := utils.ToString(row["event_stage_id"]); !stageIDs[stage] {
			findings = append(findings, fmt.Sprintf("score %s: stage %s is gone", id, stage))
		}
		if p := utils.ToString(row["participant_id"]); !participantIDs[p] {
			findings = append(findings, fmt.Sprintf("score %s: participant %s is gone", id, p))
		}
	}

	stages, err := s.Select(ctx, schema.TableEventStages, store.NewQuery())
	if err != nil {
		return nil, err
	}
	for _, row := range stages {
		if ev := utils.ToString(row["event_id"]); !eventIDs[ev] {
			findings = append(findings, fmt.Sprintf(
				"stage %s: event %s is gone", utils.ToString(row["id"]), ev))
		}
	}

	members, err := s.Select(ctx, schema.TableTeamMembers, store.NewQuery())
	if err != nil {
		return nil, err
	}
	for _, row := range members {
		id := utils.ToString(row["id"])
		if team := utils.ToString(row["team_id"]); !participantIDs[team] {
			findings = append(findings, fmt.Sprintf("member %s: team %s is gone", id, team))
		}
		if p := utils.ToString(row["participant_id"]); !participantIDs[p] {
			findings = append(findings, fmt.Sprintf("member %s: participant %s is gone", id, p))
		}
	}

	return findings, nil
}

func idSet(ctx context.Context, s store.Store, table string) (map[string]bool, error) {
	rows, err := s.Select(ctx, table, store.NewQuery())
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[utils.ToString(row["id"])] = true
	}
	return ids, nil
}
