package catalog

import (
	"context"
	"fmt"

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

// UpsertEventFormatWithDetails reconciles an event format and its stage
// tree in one composite call. References are checked first, then the
// format row is upserted, then the tree is reconciled level by level:
// supplied stages are matched by id or by (parent, number), stale siblings
// are pruned together with their subtrees. Rerunning the identical call is
// a no-op.
func (s *Service) UpsertEventFormatWithDetails(ctx context.Context, input FormatInput) (*FormatResult, error) {
	if input.SportID == "" {
		return nil, errs.Invalid("event_format", "sportId", "must not be empty")
	}
	sportRow, err := s.store.SelectOne(ctx, schema.TableSports, store.ByID(input.SportID))
	if err != nil {
		return nil, err
	}
	sportName := utils.ToString(sportRow["name"])
	plugin, hasPlugin := s.scoring.Plugin(sportName)

	scoreFormatID := input.ScoreFormatID
	if scoreFormatID == "" {
		scoreFormatID, err = s.defaultScoreFormat(ctx, input.SportID, sportName)
	} else {
		_, err = s.store.SelectOne(ctx, schema.TableScoreFormats, store.ByID(scoreFormatID))
	}
	if err != nil {
		return nil, err
	}

	if hasPlugin && len(input.Metadata) > 0 {
		if err := plugin.ValidateMetadata(schema.TableEventFormats, input.Metadata); err != nil {
			return nil, err
		}
	}

	stages := input.Stages
	if stages == nil && input.StageCount > 0 {
		if !hasPlugin {
			return nil, errs.Invalid("event_format", "stageCount",
				"no plugin registered for sport "+sportName+" to expand a stage count")
		}
		stages = stagesFromPlans(plugin.DefaultStages(input.StageCount))
	}
	if hasPlugin {
		if err := validateStageMetadata(plugin, stages); err != nil {
			return nil, err
		}
	}

	formatID := input.ID
	if formatID == "" {
		formatID = uuid.NewString()
	}
	record := store.RowOf(schema.EventFormat{
		ID:              formatID,
		SportID:         input.SportID,
		ScoreFormatID:   scoreFormatID,
		Name:            utils.TextPtr(input.Name),
		Notes:           utils.TextPtr(input.Notes),
		Location:        utils.TextPtr(input.Location),
		DurationMinutes: input.DurationMinutes,
		MinTeamSize:     input.MinTeamSize,
		MaxTeamSize:     input.MaxTeamSize,
		Metadata:        datatypes.JSONMap(input.Metadata),
	})
	res, err := s.engine.Upsert(ctx, schema.TableEventFormats, record, nil)
	if err != nil {
		return nil, err
	}

	var set upsert.ChangeSet
	if stages != nil {
		set, err = s.reconcileFormatStages(ctx, res.ID, nil, stages, 1)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Reconciled event format",
		zap.String("id", res.ID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("stages", set.Total()))

	formatRow, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(res.ID))
	if err != nil {
		return nil, err
	}
	result := &FormatResult{Stages: set}
	if err := store.ScanRow(formatRow, &result.Format); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEventFormatDetails returns a format with its sport and score format
// resolved and its stage tree rebuilt from the flat rows.
func (s *Service) GetEventFormatDetails(ctx context.Context, id string) (*FormatDetails, error) {
	row, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(id))
	if err != nil {
		return nil, err
	}
	details := &FormatDetails{}
	if err := store.ScanRow(row, &details.EventFormat); err != nil {
		return nil, err
	}

	sportRow, err := s.store.SelectOne(ctx, schema.TableSports, store.ByID(details.SportID))
	if err == nil {
		details.Sport = &schema.Sport{}
		if err := store.ScanRow(sportRow, details.Sport); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	sfRow, err := s.store.SelectOne(ctx, schema.TableScoreFormats, store.ByID(details.ScoreFormatID))
	if err == nil {
		details.ScoreFormat = &schema.ScoreFormat{}
		if err := store.ScanRow(sfRow, details.ScoreFormat); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	stageRows, err := s.store.Select(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", id).OrderBy("number", false))
	if err != nil {
		return nil, err
	}
	forest := s.trees.BuildForest(stageRows, tree.Spec{
		Levels: []tree.Level{{Name: "format", IDColumn: "id", ParentColumn: "parent_id"}},
	})
	details.Stages, err = stageNodes(forest)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// DeleteEventFormat removes a format and its stage tree. A format still
// registered at a venue stays; unregister it first.
func (s *Service) DeleteEventFormat(ctx context.Context, id string) error {
	if _, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(id)); err != nil {
		return err
	}
	n, err := s.store.Count(ctx, schema.TableVenueEventFormats,
		store.NewQuery().Eq("event_format_id", id))
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.Conflict(schema.TableVenueEventFormats, "event_format_id", id)
	}

	if _, err := s.store.Delete(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", id)); err != nil {
		return err
	}
	_, err = s.store.Delete(ctx, schema.TableEventFormats, store.ByID(id))
	return err
}

// reconcileFormatStages replaces one sibling level and recurses into the
// supplied sub-stages under the ids the children actually live at. A node
// without sub-stages is a leaf: stale children below it are pruned.
func (s *Service) reconcileFormatStages(ctx context.Context, formatID string, parentID any, stages []StageInput, depth int) (upsert.ChangeSet, error) {
	var set upsert.ChangeSet
	if depth > tree.DefaultMaxDepth {
		return set, errs.Invalid("event_format_stage", "subStages", "stage tree exceeds the supported depth")
	}

	rows := make([]store.Row, 0, len(stages))
	numbers := make(map[int]bool, len(stages))
	for _, st := range stages {
		if numbers[st.Number] {
			return set, errs.Invalid("event_format_stage", "number",
				fmt.Sprintf("sibling number %d supplied twice", st.Number))
		}
		numbers[st.Number] = true

		row := store.RowOf(schema.EventFormatStage{
			ID:            st.ID,
			EventFormatID: formatID,
			Number:        st.Number,
			Name:          utils.TextPtr(st.Name),
			Notes:         utils.TextPtr(st.Notes),
			Location:      utils.TextPtr(st.Location),
			Metadata:      datatypes.JSONMap(st.Metadata),
		})
		row["parent_id"] = parentID
		rows = append(rows, row)
	}

	results, set, err := s.engine.ReplaceChildren(ctx, upsert.ReplaceSpec{
		Table: schema.TableEventFormatStages,
		Scope: store.NewQuery().Eq("event_format_id", formatID).Eq("parent_id", parentID),
		Rows:  rows,
		AltFor: func(row store.Row) *store.Query {
			return store.NewQuery().
				Eq("event_format_id", formatID).
				Eq("parent_id", parentID).
				Eq("number", row["number"])
		},
		OnPrune: func(ctx context.Context, id string) error {
			return s.pruneStageSubtree(ctx, schema.TableEventFormatStages, id, depth)
		},
	})
	if err != nil {
		return set, err
	}

	for i, st := range stages {
		sub, err := s.reconcileFormatStages(ctx, formatID, results[i].ID, st.SubStages, depth+1)
		if err != nil {
			return set, err
		}
		set.Add(sub)
	}
	return set, nil
}

// pruneStageSubtree deletes every descendant of a stage, deepest first.
// The stage itself is deleted by the caller.
func (s *Service) pruneStageSubtree(ctx context.Context, table, id string, depth int) error {
	if depth > tree.DefaultMaxDepth {
		return errs.Invalid(table, "parent_id", "subtree exceeds the supported depth")
	}
	children, err := s.store.Select(ctx, table, store.NewQuery().Eq("parent_id", id))
	if err != nil {
		return err
	}
	for _, child := range children {
		childID := utils.ToString(child["id"])
		if childID == "" {
			continue
		}
		if err := s.pruneStageSubtree(ctx, table, childID, depth+1); err != nil {
			return err
		}
		if _, err := s.store.Delete(ctx, table, store.ByID(childID)); err != nil {
			return err
		}
	}
	return nil
}

// defaultScoreFormat resolves the score format a format falls back to when
// the caller names none: the sport plugin's default method, else any format
// already scoped to the sport.
func (s *Service) defaultScoreFormat(ctx context.Context, sportID, sportName string) (string, error) {
	if plugin, ok := s.scoring.Plugin(sportName); ok {
		if _, err := s.scoring.EnsureScoreFormats(ctx, plugin); err != nil {
			return "", err
		}
		if methods := plugin.Methods(); len(methods) > 0 {
			row, err := s.store.SelectOne(ctx, schema.TableScoreFormats,
				store.NewQuery().Eq("name", methods[0].Name()).Eq("sport_id", sportID))
			if err == nil {
				return utils.ToString(row["id"]), nil
			}
			if !errs.IsNotFound(err) {
				return "", err
			}
		}
	}

	row, err := s.store.SelectOne(ctx, schema.TableScoreFormats,
		store.NewQuery().Eq("sport_id", sportID).OrderBy("created_at", false))
	if err != nil {
		if errs.IsNotFound(err) {
			return "", errs.Invalid("event_format", "scoreFormatId",
				"no score format registered for sport "+sportName)
		}
		return "", err
	}
	return utils.ToString(row["id"]), nil
}

// stagesFromPlans converts a plugin's default stage layout into inputs.
func stagesFromPlans(plans []scoring.StagePlan) []StageInput {
	stages := make([]StageInput, 0, len(plans))
	for _, plan := range plans {
		stages = append(stages, StageInput{
			Number:   plan.Number,
			Name:     plan.Name,
			Metadata: plan.Metadata,
		})
	}
	return stages
}

// validateStageMetadata runs the plugin's stage checks over a whole tree.
func validateStageMetadata(plugin scoring.Plugin, stages []StageInput) error {
	for _, st := range stages {
		if len(st.Metadata) > 0 {
			if err := plugin.ValidateMetadata(schema.TableEventFormatStages, st.Metadata); err != nil {
				return err
			}
		}
		if err := validateStageMetadata(plugin, st.SubStages); err != nil {
			return err
		}
	}
	return nil
}

// stageNodes converts a built forest into the response tree.
func stageNodes(nodes []*tree.Node) ([]StageNode, error) {
	out := make([]StageNode, 0, len(nodes))
	for _, n := range nodes {
		var stage StageNode
		if err := store.ScanRow(n.Row, &stage.EventFormatStage); err != nil {
			return nil, err
		}
		subs, err := stageNodes(n.SubNodes)
		if err != nil {
			return nil, err
		}
		stage.SubStages = subs
		out = append(out, stage)
	}
	return out, nil
}
