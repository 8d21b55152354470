package checks

import (
	"context"
	"fmt"

	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/utils"
)

// Duplicates finds identity collisions the schema's unique indexes should
// have prevented: two merge entries mapping the same foreign row, or two
// score rows for one (stage, participant) pair. Either one means an import
// or upsert path went around its resolution step.
func Duplicates(ctx context.Context, s store.Store) ([]string, error) {
	var findings []string

	entries, err := s.Select(ctx, schema.TableMergeEntries, store.NewQuery())
	if err != nil {
		return nil, err
	}
	seenForeign := make(map[string]bool, len(entries))
	for _, row := range entries {
		key := utils.ToString(row["foreign_storage_id"]) + "/" + utils.ToString(row["foreign_id"])
		if seenForeign[key] {
			findings = append(findings, fmt.Sprintf("merge entry %s: %s is mapped twice",
				utils.ToString(row["id"]), key))
		}
		seenForeign[key] = true
	}

	scores, err := s.Select(ctx, schema.TableScores, store.NewQuery())
	if err != nil {
		return nil, err
	}
	seenScore := make(map[string]bool, len(scores))
	for _, row := range scores {
		key := utils.ToString(row["event_stage_id"]) + "/" + utils.ToString(row["participant_id"])
		if seenScore[key] {
			findings = append(findings, fmt.Sprintf("score %s: second entry for %s",
				utils.ToString(row["id"]), key))
		}
		seenScore[key] = true
	}

	return findings, nil
}
