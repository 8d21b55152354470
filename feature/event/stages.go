package event

import (
	"context"
	"fmt"
	"strings"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// stageSets are the change tallies of one composite stage write.
type stageSets struct {
	stages upsert.ChangeSet
	scores upsert.ChangeSet
}

// scoringContext is the sport machinery score writes derive through.
// Resolution is best-effort: an event whose format has no registered plugin
// still stores raw values, it just skips derivation.
type scoringContext struct {
	method scoring.Method
	plugin scoring.Plugin
	ok     bool
}

// stageScope is the per-call working set of a composite stage write: the
// venue and format stage layers of the event's registration, the event's
// persisted stages and the resolved scoring context.
type stageScope struct {
	eventID     string
	venues      map[string]store.Row      // venue stage id -> row
	venueBySlot map[string]map[int]string // parent venue stage id ("" = root) -> number -> venue stage id
	formats     map[string]store.Row      // format stage id -> row
	stageByRef  map[string]string         // venue stage id -> persisted event stage id
	refByStage  map[string]string         // persisted event stage id -> venue stage id
	claimedRefs map[string]bool
	scoring     scoringContext
	sets        stageSets
}

// mirrorVenueStages reconciles an event's stage tree against the venue's
// mirrored tree: one event stage per venue stage, same parents, same
// numbers. Rows are identified by their source venue stage, so rerunning
// never duplicates and venue tree edits flow through; event stages whose
// source is gone are removed with their scores.
func (s *Service) mirrorVenueStages(ctx context.Context, eventID, registrationID string) (upsert.ChangeSet, error) {
	var set upsert.ChangeSet

	venueRows, err := s.store.Select(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", registrationID).OrderBy("number", false))
	if err != nil {
		return set, err
	}
	forest := s.trees.BuildForest(venueRows, tree.Spec{
		Levels: []tree.Level{{Name: "venue", IDColumn: "id", ParentColumn: "parent_id"}},
	})

	existing, err := s.store.Select(ctx, schema.TableEventStages,
		store.NewQuery().Eq("event_id", eventID))
	if err != nil {
		return set, err
	}
	eventBySource := make(map[string]store.Row, len(existing))
	for _, row := range existing {
		if key := utils.ToString(row["venue_event_format_stage_id"]); key != "" {
			eventBySource[key] = row
		}
	}

	kept := make(map[string]bool, len(venueRows))
	for _, root := range forest {
		if err := s.mirrorStage(ctx, eventID, nil, root, eventBySource, kept, &set); err != nil {
			return set, err
		}
	}

	for _, row := range existing {
		id := utils.ToString(row["id"])
		if id == "" || kept[id] {
			continue
		}
		if _, err := s.store.Delete(ctx, schema.TableScores,
			store.NewQuery().Eq("event_stage_id", id)); err != nil {
			return set, err
		}
		if _, err := s.store.Delete(ctx, schema.TableEventStages, store.ByID(id)); err != nil {
			return set, err
		}
		set.Pruned++
	}
	return set, nil
}

// mirrorStage upserts one event stage from its venue source and recurses
// into the source's children. Only structural columns are written; names,
// notes and metadata on event stages belong to the event.
func (s *Service) mirrorStage(ctx context.Context, eventID string, parentID any, node *tree.Node, eventBySource map[string]store.Row, kept map[string]bool, set *upsert.ChangeSet) error {
	var src schema.VenueEventFormatStage
	if err := store.ScanRow(node.Row, &src); err != nil {
		return err
	}

	row := store.RowOf(schema.EventStage{
		EventID:                 eventID,
		VenueEventFormatStageID: src.ID,
		Number:                  src.Number,
	})
	row["parent_id"] = parentID

	res, err := s.engine.Upsert(ctx, schema.TableEventStages, row,
		store.NewQuery().
			Eq("event_id", eventID).
			Eq("venue_event_format_stage_id", src.ID))
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

	// a stage promoted back to root keeps a stale parent otherwise: the
	// engine's diff never writes nil
	if parentID == nil {
		if prior, ok := eventBySource[src.ID]; ok && utils.ToString(prior["parent_id"]) != "" {
			if err := s.store.Update(ctx, schema.TableEventStages, res.ID,
				store.Row{"parent_id": nil}); err != nil {
				return err
			}
		}
	}

	for _, sub := range node.SubNodes {
		if err := s.mirrorStage(ctx, eventID, res.ID, sub, eventBySource, kept, set); err != nil {
			return err
		}
	}
	return nil
}

// newStageScope loads everything a composite stage write needs up front:
// the registration's venue and format stage layers, the event's persisted
// stages and the scoring context.
func (s *Service) newStageScope(ctx context.Context, eventID, registrationID string) (*stageScope, error) {
	regRow, err := s.store.SelectOne(ctx, schema.TableVenueEventFormats, store.ByID(registrationID))
	if err != nil {
		return nil, err
	}
	formatID := utils.ToString(regRow["event_format_id"])

	scope := &stageScope{
		eventID:     eventID,
		venues:      map[string]store.Row{},
		venueBySlot: map[string]map[int]string{},
		formats:     map[string]store.Row{},
		stageByRef:  map[string]string{},
		refByStage:  map[string]string{},
		claimedRefs: map[string]bool{},
		scoring:     s.resolveScoring(ctx, formatID),
	}

	venueRows, err := s.store.Select(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", registrationID))
	if err != nil {
		return nil, err
	}
	for _, row := range venueRows {
		id := utils.ToString(row["id"])
		if id == "" {
			continue
		}
		scope.venues[id] = row
		parent := utils.ToString(row["parent_id"])
		if scope.venueBySlot[parent] == nil {
			scope.venueBySlot[parent] = map[int]string{}
		}
		scope.venueBySlot[parent][utils.ToInt(row["number"])] = id
	}

	formatRows, err := s.store.Select(ctx, schema.TableEventFormatStages,
		store.NewQuery().Eq("event_format_id", formatID))
	if err != nil {
		return nil, err
	}
	for _, row := range formatRows {
		if id := utils.ToString(row["id"]); id != "" {
			scope.formats[id] = row
		}
	}

	existing, err := s.store.Select(ctx, schema.TableEventStages,
		store.NewQuery().Eq("event_id", eventID))
	if err != nil {
		return nil, err
	}
	for _, row := range existing {
		id := utils.ToString(row["id"])
		ref := utils.ToString(row["venue_event_format_stage_id"])
		if id == "" || ref == "" {
			continue
		}
		scope.stageByRef[ref] = id
		scope.refByStage[id] = ref
	}
	return scope, nil
}

// resolveScoring walks event format -> score format -> method, plus the
// sport's plugin for validation. Misses are logged and tolerated.
func (s *Service) resolveScoring(ctx context.Context, formatID string) scoringContext {
	formatRow, err := s.store.SelectOne(ctx, schema.TableEventFormats, store.ByID(formatID))
	if err != nil {
		s.logger.Debug("Event format unresolved, skipping score derivation",
			zap.String("eventFormatId", formatID), zap.Error(err))
		return scoringContext{}
	}
	method, err := s.scoring.MethodForScoreFormat(ctx, utils.ToString(formatRow["score_format_id"]))
	if err != nil {
		s.logger.Debug("No scoring method registered, skipping score derivation",
			zap.String("eventFormatId", formatID), zap.Error(err))
		return scoringContext{}
	}

	sc := scoringContext{method: method, ok: true}
	if sportRow, err := s.store.SelectOne(ctx, schema.TableSports, store.ByID(utils.ToString(formatRow["sport_id"]))); err == nil {
		if plugin, ok := s.scoring.Plugin(utils.ToString(sportRow["name"])); ok {
			sc.plugin = plugin
		}
	}
	return sc
}

// resolveVenueRef finds the venue stage an input stage mirrors: the
// explicit reference, the (parent, number) slot in the venue tree, or the
// reference the persisted stage already carries. Each venue stage backs at
// most one event stage per write.
func (sc *stageScope) resolveVenueRef(st StageInput, parentVenueID string) (string, error) {
	ref := st.VenueEventFormatStageID
	if ref == "" {
		if slots, ok := sc.venueBySlot[parentVenueID]; ok {
			ref = slots[st.Number]
		}
	}
	if ref == "" && st.ID != "" {
		ref = sc.refByStage[st.ID]
	}
	if ref == "" {
		return "", errs.Invalid("event_stage", "venueEventFormatStageId",
			fmt.Sprintf("no venue stage mirrors sibling number %d here", st.Number))
	}
	if _, ok := sc.venues[ref]; !ok {
		return "", errs.Invalid("event_stage", "venueEventFormatStageId",
			ref+" is not a stage of this venue format")
	}
	if sc.claimedRefs[ref] {
		return "", errs.Invalid("event_stage", "venueEventFormatStageId",
			"venue stage "+ref+" supplied twice")
	}
	sc.claimedRefs[ref] = true
	return ref, nil
}

// reconcileStageContent applies a supplied stage tree to an event as a
// replace-set per parent: stages are matched by their venue source, content
// columns and score sets are written, and persisted siblings missing from
// the payload are pruned with their subtrees and scores.
func (s *Service) reconcileStageContent(ctx context.Context, eventID, registrationID string, stages []StageInput) (stageSets, error) {
	scope, err := s.newStageScope(ctx, eventID, registrationID)
	if err != nil {
		return stageSets{}, err
	}
	if err := s.reconcileLevel(ctx, scope, nil, "", stages, 1); err != nil {
		return scope.sets, err
	}
	return scope.sets, nil
}

// reconcileLevel writes one sibling set and recurses. A supplied stage
// without SubStages is a leaf; its persisted children are pruned.
func (s *Service) reconcileLevel(ctx context.Context, scope *stageScope, parentID any, parentVenueID string, stages []StageInput, depth int) error {
	if depth > tree.DefaultMaxDepth {
		return errs.Invalid("event_stage", "depth",
			fmt.Sprintf("stage trees deeper than %d levels are not supported", tree.DefaultMaxDepth))
	}

	numbers := map[int]bool{}
	refs := make([]string, 0, len(stages))
	rows := make([]store.Row, 0, len(stages))
	for _, st := range stages {
		if numbers[st.Number] {
			return errs.Invalid("event_stage", "number",
				fmt.Sprintf("sibling number %d supplied twice", st.Number))
		}
		numbers[st.Number] = true

		ref, err := scope.resolveVenueRef(st, parentVenueID)
		if err != nil {
			return err
		}
		refs = append(refs, ref)

		if scope.scoring.plugin != nil && len(st.Metadata) > 0 {
			if err := scope.scoring.plugin.ValidateMetadata(schema.TableEventStages, st.Metadata); err != nil {
				return err
			}
		}

		row := store.Row{
			"event_id":                    scope.eventID,
			"venue_event_format_stage_id": ref,
			"number":                      st.Number,
			"parent_id":                   parentID,
		}
		if st.ID != "" {
			row["id"] = st.ID
		}
		if st.Name != "" {
			row["name"] = st.Name
		}
		if st.Notes != "" {
			row["notes"] = st.Notes
		}
		if st.Location != "" {
			row["location"] = st.Location
		}
		if st.Metadata != nil {
			row["metadata"] = st.Metadata
		}
		rows = append(rows, row)
	}

	results, set, err := s.engine.ReplaceChildren(ctx, upsert.ReplaceSpec{
		Table: schema.TableEventStages,
		Scope: store.NewQuery().Eq("event_id", scope.eventID).Eq("parent_id", parentID),
		Rows:  rows,
		AltFor: func(row store.Row) *store.Query {
			return store.NewQuery().
				Eq("event_id", scope.eventID).
				Eq("venue_event_format_stage_id", row["venue_event_format_stage_id"])
		},
		OnPrune: func(ctx context.Context, id string) error {
			return s.pruneStageSubtree(ctx, id, 1)
		},
	})
	if err != nil {
		return err
	}
	scope.sets.stages.Add(set)

	for i, st := range stages {
		if st.Scores != nil {
			if err := s.reconcileScores(ctx, scope, results[i].ID, refs[i], st.Scores); err != nil {
				return err
			}
		}
		if err := s.reconcileLevel(ctx, scope, results[i].ID, refs[i], st.SubStages, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// overlayStageContent applies stage content and scores onto an already
// generated tree without reshaping it. Stages are located through their
// venue source, so a create payload can score a subset of stages.
func (s *Service) overlayStageContent(ctx context.Context, scope *stageScope, parentVenueID string, stages []StageInput, depth int) error {
	if depth > tree.DefaultMaxDepth {
		return errs.Invalid("event_stage", "depth",
			fmt.Sprintf("stage trees deeper than %d levels are not supported", tree.DefaultMaxDepth))
	}

	for _, st := range stages {
		ref, err := scope.resolveVenueRef(st, parentVenueID)
		if err != nil {
			return err
		}
		stageID := scope.stageByRef[ref]
		if stageID == "" {
			return errs.NotFound(schema.TableEventStages, ref)
		}

		if scope.scoring.plugin != nil && len(st.Metadata) > 0 {
			if err := scope.scoring.plugin.ValidateMetadata(schema.TableEventStages, st.Metadata); err != nil {
				return err
			}
		}

		row := store.Row{"id": stageID}
		if st.Name != "" {
			row["name"] = st.Name
		}
		if st.Notes != "" {
			row["notes"] = st.Notes
		}
		if st.Location != "" {
			row["location"] = st.Location
		}
		if st.Metadata != nil {
			row["metadata"] = st.Metadata
		}
		res, err := s.engine.Upsert(ctx, schema.TableEventStages, row, nil)
		if err != nil {
			return err
		}
		switch res.Outcome {
		case upsert.Updated:
			scope.sets.stages.Updated++
		case upsert.Unchanged:
			scope.sets.stages.Unchanged++
		}

		if st.Scores != nil {
			if err := s.reconcileScores(ctx, scope, stageID, ref, st.Scores); err != nil {
				return err
			}
		}
		if len(st.SubStages) > 0 {
			if err := s.overlayStageContent(ctx, scope, ref, st.SubStages, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// reconcileScores makes the supplied entries a stage's complete score set.
// Entries are matched by (stage, participant), raw values are validated and
// derived through the scoring context against the stage's three-layer
// metadata, and margins are refreshed afterwards.
func (s *Service) reconcileScores(ctx context.Context, scope *stageScope, stageID, venueRef string, scores []ScoreInput) error {
	stageRow, err := s.store.SelectOne(ctx, schema.TableEventStages, store.ByID(stageID))
	if err != nil {
		return err
	}
	var persisted schema.EventStage
	if err := store.ScanRow(stageRow, &persisted); err != nil {
		return err
	}
	merged, err := layeredMetadata(scope.venues, scope.formats, venueRef, persisted.Metadata)
	if err != nil {
		return err
	}
	stageCtx := scoring.StageContext{StageID: stageID, Number: persisted.Number, Metadata: merged}

	seen := map[string]bool{}
	rows := make([]store.Row, 0, len(scores))
	for _, in := range scores {
		pid := strings.TrimSpace(in.ParticipantID)
		if pid == "" {
			return errs.Invalid("score", "participantId", "must not be empty")
		}
		if seen[pid] {
			return errs.Invalid("score", "participantId",
				"participant "+pid+" scored twice at one stage")
		}
		seen[pid] = true
		if _, err := s.store.SelectOne(ctx, schema.TableParticipants, store.ByID(pid)); err != nil {
			return err
		}

		row := store.Row{"event_stage_id": stageID, "participant_id": pid}
		if in.ID != "" {
			row["id"] = in.ID
		}
		if in.Completed != nil {
			row["completed"] = *in.Completed
		}
		if in.Metadata != nil {
			row["metadata"] = in.Metadata
		}
		if in.RawValue != nil {
			raw := *in.RawValue
			if scope.scoring.plugin != nil {
				if err := scope.scoring.plugin.ValidateRawValue(raw, stageCtx); err != nil {
					return err
				}
			}
			row["raw_value"] = raw
			if scope.scoring.ok {
				row["points"] = scope.scoring.method.ValueToPoints(raw)
				if kind := scope.scoring.method.ValueToScoreType(raw, stageCtx); kind != "" {
					row["score_type"] = kind
				}
			}
		}
		rows = append(rows, row)
	}

	_, set, err := s.engine.ReplaceChildren(ctx, upsert.ReplaceSpec{
		Table: schema.TableScores,
		Scope: store.NewQuery().Eq("event_stage_id", stageID),
		Rows:  rows,
		AltFor: func(row store.Row) *store.Query {
			return store.NewQuery().
				Eq("event_stage_id", stageID).
				Eq("participant_id", row["participant_id"])
		},
	})
	if err != nil {
		return err
	}
	scope.sets.scores.Add(set)

	if scope.scoring.ok {
		return s.refreshStageMargins(ctx, stageID, scope.scoring.method)
	}
	return nil
}

// layeredMetadata merges the three metadata layers of an event stage, most
// specific winning per key: event over venue over format.
func layeredMetadata(venues, formats map[string]store.Row, venueRef string, eventMeta datatypes.JSONMap) (map[string]any, error) {
	var layered map[string]any
	if venueRow, ok := venues[venueRef]; ok {
		var venue schema.VenueEventFormatStage
		if err := store.ScanRow(venueRow, &venue); err != nil {
			return nil, err
		}
		if formatRow, ok := formats[venue.EventFormatStageID]; ok {
			var format schema.EventFormatStage
			if err := store.ScanRow(formatRow, &format); err != nil {
				return nil, err
			}
			layered = map[string]any(format.Metadata)
		}
		layered = utils.MergeMaps(layered, map[string]any(venue.Metadata))
	}
	return utils.MergeMaps(layered, map[string]any(eventMeta)), nil
}

// refreshStageMargins rederives every margin at one stage from the
// persisted points. The strict best gets a win margin over the runner-up, a
// shared best gets zero, everyone behind gets a loss margin to the front.
// Margins are written directly rather than diffed: clearing one means
// writing nil, which the engine's diff deliberately never does.
func (s *Service) refreshStageMargins(ctx context.Context, stageID string, method scoring.Method) error {
	rows, err := s.store.Select(ctx, schema.TableScores,
		store.NewQuery().Eq("event_stage_id", stageID))
	if err != nil {
		return err
	}

	type contender struct {
		id     string
		points float64
	}
	contenders := make([]contender, 0, len(rows))
	for _, row := range rows {
		if !utils.ToBool(row["completed"]) || row["points"] == nil {
			continue
		}
		contenders = append(contenders, contender{
			id:     utils.ToString(row["id"]),
			points: utils.ToFloat(row["points"]),
		})
	}

	better := func(a, b float64) bool {
		if method.HigherPointsBetter() {
			return a > b
		}
		return a < b
	}

	type margins struct {
		win  *float64
		loss *float64
	}
	desired := make(map[string]margins, len(contenders))
	if len(contenders) > 1 {
		for i, c := range contenders {
			var bestOther float64
			first := true
			for j, other := range contenders {
				if j == i {
					continue
				}
				if first || better(other.points, bestOther) {
					bestOther = other.points
					first = false
				}
			}
			gap := c.points - bestOther
			if gap < 0 {
				gap = -gap
			}
			switch {
			case better(c.points, bestOther):
				desired[c.id] = margins{win: &gap}
			case c.points == bestOther:
				zero := 0.0
				desired[c.id] = margins{win: &zero}
			default:
				desired[c.id] = margins{loss: &gap}
			}
		}
	}

	for _, row := range rows {
		id := utils.ToString(row["id"])
		want := desired[id]
		if marginMatches(row["win_margin"], want.win) && marginMatches(row["loss_margin"], want.loss) {
			continue
		}
		changes := store.Row{"win_margin": nil, "loss_margin": nil}
		if want.win != nil {
			changes["win_margin"] = *want.win
		}
		if want.loss != nil {
			changes["loss_margin"] = *want.loss
		}
		if err := s.store.Update(ctx, schema.TableScores, id, changes); err != nil {
			return err
		}
	}
	return nil
}

func marginMatches(raw any, want *float64) bool {
	if raw == nil || want == nil {
		return raw == nil && want == nil
	}
	return utils.ToFloat(raw) == *want
}

// pruneStageSubtree removes a pruned stage's scores and descendant stages.
// The stage row itself is deleted by the replace-set that pruned it.
func (s *Service) pruneStageSubtree(ctx context.Context, id string, depth int) error {
	if depth > tree.DefaultMaxDepth {
		return nil
	}
	if _, err := s.store.Delete(ctx, schema.TableScores,
		store.NewQuery().Eq("event_stage_id", id)); err != nil {
		return err
	}
	children, err := s.store.Select(ctx, schema.TableEventStages,
		store.NewQuery().Eq("parent_id", id))
	if err != nil {
		return err
	}
	for _, child := range children {
		childID := utils.ToString(child["id"])
		if childID == "" {
			continue
		}
		if err := s.pruneStageSubtree(ctx, childID, depth+1); err != nil {
			return err
		}
		if _, err := s.store.Delete(ctx, schema.TableEventStages, store.ByID(childID)); err != nil {
			return err
		}
	}
	return nil
}
