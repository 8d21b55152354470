package tree

import (
	"scorebook/core/store"
	"scorebook/core/utils"

	"go.uber.org/zap"
)

// Edge is one parent→child link from an edge table.
type Edge struct {
	ParentID string
	ChildID  string
}

// EdgesOf converts edge-table rows to Edges using the given columns.
func EdgesOf(rows []store.Row, parentColumn, childColumn string) []Edge {
	edges := make([]Edge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, Edge{
			ParentID: utils.ToString(row[parentColumn]),
			ChildID:  utils.ToString(row[childColumn]),
		})
	}
	return edges
}

// BuildFromEdges builds a forest from entity rows plus an explicit edge
// list, the shape team trees come in. Roots are the nodes never referenced
// as a child within the queried edge set; when every node is referenced
// (the requested team is itself nested, or the edges form a cycle) the full
// built set is returned rather than nothing.
func (b *Builder) BuildFromEdges(rows []store.Row, edges []Edge, maxDepth int) []*Node {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seen := map[string]*Node{}
	order := make([]*Node, 0, len(rows))
	for _, row := range rows {
		id := utils.ToString(row["id"])
		if id == "" {
			b.log.Warn("Dropping entity row with no id")
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		node := &Node{ID: id, Row: row, Children: map[string][]store.Row{}}
		seen[id] = node
		order = append(order, node)
	}

	referenced := map[string]bool{}
	for _, edge := range edges {
		parent, ok := seen[edge.ParentID]
		if !ok {
			continue
		}
		child, ok := seen[edge.ChildID]
		if !ok {
			continue
		}
		referenced[edge.ChildID] = true

		if child.parent != nil {
			if child.parent != parent {
				b.log.Warn("Node already attached elsewhere, ignoring extra edge",
					zap.String("node", child.ID), zap.String("parent", parent.ID))
			}
			continue
		}
		if parent == child || climbsTooFar(parent, child, maxDepth) {
			b.log.Warn("Cycle or excessive depth in edge set, skipping edge",
				zap.String("node", child.ID), zap.String("parent", parent.ID))
			continue
		}

		child.parent = parent
		child.ParentID = parent.ID
		parent.SubNodes = append(parent.SubNodes, child)
	}

	var roots []*Node
	for _, node := range order {
		if !referenced[node.ID] {
			roots = append(roots, node)
		}
	}
	if len(roots) == 0 {
		return order
	}
	return roots
}
