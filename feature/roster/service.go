package roster

import (
	"context"
	"strings"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles participant and team operations.
type Service struct {
	store  store.Store
	engine *upsert.Engine
	trees  *tree.Builder
	logger *zap.Logger
}

// NewService creates a new roster service.
func NewService(s store.Store, engine *upsert.Engine, logger *zap.Logger) *Service {
	return &Service{
		store:  s,
		engine: engine,
		trees:  tree.NewBuilder(logger),
		logger: logger,
	}
}

// UpsertParticipant reconciles one participant. Creating without a name is
// rejected; everything else follows upsert semantics, so partial payloads
// never blank out fields.
func (s *Service) UpsertParticipant(ctx context.Context, input ParticipantInput) (*schema.Participant, error) {
	name := strings.TrimSpace(input.Name)
	id := input.ID
	if id == "" {
		if name == "" {
			return nil, errs.Invalid("participant", "name", "must not be empty")
		}
		id = uuid.NewString()
	}

	row := store.Row{"id": id}
	if name != "" {
		row["name"] = name
	}
	if input.IsTeam != nil {
		row["is_team"] = *input.IsTeam
	}
	if input.Notes != "" {
		row["notes"] = input.Notes
	}
	if input.Location != "" {
		row["location"] = input.Location
	}
	if len(input.Metadata) > 0 {
		row["metadata"] = input.Metadata
	}

	if _, err := s.engine.Upsert(ctx, schema.TableParticipants, row, nil); err != nil {
		return nil, err
	}
	return s.GetParticipant(ctx, id)
}

// GetParticipant returns one participant by id.
func (s *Service) GetParticipant(ctx context.Context, id string) (*schema.Participant, error) {
	row, err := s.store.SelectOne(ctx, schema.TableParticipants, store.ByID(id))
	if err != nil {
		return nil, err
	}
	var p schema.Participant
	if err := store.ScanRow(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListParticipants returns participants matching the filter, in name order.
func (s *Service) ListParticipants(ctx context.Context, filter ListFilter) ([]schema.Participant, error) {
	q := store.NewQuery().OrderBy("name", false)
	if filter.IsTeam != nil {
		q = q.Eq("is_team", *filter.IsTeam)
	}
	if filter.Name != "" {
		q = q.Like("name", "%"+filter.Name+"%")
	}

	rows, err := s.store.Select(ctx, schema.TableParticipants, q)
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

// UpsertTeamWithMembers reconciles a team and its complete member set.
// Members must exist, may themselves be teams, and may not contain the
// team itself anywhere in their own trees. Matched members keep their edge
// rows; members missing from the supplied set are removed.
func (s *Service) UpsertTeamWithMembers(ctx context.Context, input TeamInput) (*TeamResult, error) {
	teamID := input.ID
	if teamID == "" {
		if strings.TrimSpace(input.Name) == "" {
			return nil, errs.Invalid("team", "name", "must not be empty")
		}
		teamID = uuid.NewString()
	}

	members := dedupe(input.MemberIDs)
	if err := s.validateMembers(ctx, teamID, members); err != nil {
		return nil, err
	}

	row := store.Row{"id": teamID, "is_team": true}
	if name := strings.TrimSpace(input.Name); name != "" {
		row["name"] = name
	}
	if input.Notes != "" {
		row["notes"] = input.Notes
	}
	if input.Location != "" {
		row["location"] = input.Location
	}
	if len(input.Metadata) > 0 {
		row["metadata"] = input.Metadata
	}
	if _, err := s.engine.Upsert(ctx, schema.TableParticipants, row, nil); err != nil {
		return nil, err
	}

	var set upsert.ChangeSet
	if input.MemberIDs != nil {
		memberRows := make([]store.Row, 0, len(members))
		for _, mid := range members {
			memberRows = append(memberRows, store.Row{"team_id": teamID, "participant_id": mid})
		}
		var err error
		_, set, err = s.engine.ReplaceChildren(ctx, upsert.ReplaceSpec{
			Table: schema.TableTeamMembers,
			Scope: store.NewQuery().Eq("team_id", teamID),
			Rows:  memberRows,
			AltFor: func(row store.Row) *store.Query {
				return store.NewQuery().
					Eq("team_id", teamID).
					Eq("participant_id", row["participant_id"])
			},
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Reconciled team",
		zap.String("id", teamID), zap.Int("members", len(members)))

	team, err := s.GetParticipant(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &TeamResult{Team: *team, Members: set}, nil
}

// GetTeamTree returns a team with its members resolved recursively. Nested
// teams expand into their own members; the walk is depth-bounded and a
// player on two sub-teams appears under the first one found.
func (s *Service) GetTeamTree(ctx context.Context, teamID string) (*TeamNode, error) {
	rootRow, err := s.store.SelectOne(ctx, schema.TableParticipants, store.ByID(teamID))
	if err != nil {
		return nil, err
	}

	rows := []store.Row{rootRow}
	var edges []tree.Edge
	visited := map[string]bool{teamID: true}
	frontier := []string{teamID}

	for depth := 0; depth < tree.DefaultMaxDepth && len(frontier) > 0; depth++ {
		edgeRows, err := s.store.Select(ctx, schema.TableTeamMembers,
			store.NewQuery().In("team_id", utils.ToAnySlice(frontier)...))
		if err != nil {
			return nil, err
		}

		var next []string
		for _, er := range edgeRows {
			child := utils.ToString(er["participant_id"])
			if child == "" {
				continue
			}
			edges = append(edges, tree.Edge{
				ParentID: utils.ToString(er["team_id"]),
				ChildID:  child,
			})
			if !visited[child] {
				visited[child] = true
				next = append(next, child)
			}
		}
		if len(next) > 0 {
			memberRows, err := s.store.Select(ctx, schema.TableParticipants,
				store.NewQuery().In("id", utils.ToAnySlice(next)...))
			if err != nil {
				return nil, err
			}
			rows = append(rows, memberRows...)
		}
		frontier = next
	}

	forest := s.trees.BuildFromEdges(rows, edges, tree.DefaultMaxDepth)
	for _, node := range forest {
		if node.ID == teamID {
			return teamNode(node)
		}
	}
	return nil, errs.NotFound(schema.TableParticipants, teamID)
}

// validateMembers rejects unknown members, direct self-membership and any
// member whose own team tree already contains the team.
func (s *Service) validateMembers(ctx context.Context, teamID string, members []string) error {
	if len(members) == 0 {
		return nil
	}
	for _, mid := range members {
		if mid == teamID {
			return errs.Invalid("team", "memberIds", "a team cannot be its own member")
		}
	}

	rows, err := s.store.Select(ctx, schema.TableParticipants,
		store.NewQuery().In("id", utils.ToAnySlice(members)...))
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(rows))
	for _, row := range rows {
		known[utils.ToString(row["id"])] = true
	}
	for _, mid := range members {
		if !known[mid] {
			return errs.NotFound(schema.TableParticipants, mid)
		}
	}

	reachable, err := s.reaches(ctx, members, teamID)
	if err != nil {
		return err
	}
	if reachable {
		return errs.Invalid("team", "memberIds", "membership would make the team contain itself")
	}
	return nil
}

// reaches reports whether target is reachable from any of the given
// participants by following membership edges downward.
func (s *Service) reaches(ctx context.Context, from []string, target string) (bool, error) {
	visited := make(map[string]bool, len(from))
	frontier := from

	for depth := 0; depth < tree.DefaultMaxDepth && len(frontier) > 0; depth++ {
		edgeRows, err := s.store.Select(ctx, schema.TableTeamMembers,
			store.NewQuery().In("team_id", utils.ToAnySlice(frontier)...))
		if err != nil {
			return false, err
		}
		var next []string
		for _, er := range edgeRows {
			child := utils.ToString(er["participant_id"])
			if child == target {
				return true, nil
			}
			if child != "" && !visited[child] {
				visited[child] = true
				next = append(next, child)
			}
		}
		frontier = next
	}
	return false, nil
}

// teamNode converts a built node into the response tree.
func teamNode(n *tree.Node) (*TeamNode, error) {
	node := &TeamNode{}
	if err := store.ScanRow(n.Row, &node.Participant); err != nil {
		return nil, err
	}
	for _, sub := range n.SubNodes {
		member, err := teamNode(sub)
		if err != nil {
			return nil, err
		}
		node.Members = append(node.Members, *member)
	}
	return node, nil
}

// dedupe keeps the first occurrence of each id, preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
