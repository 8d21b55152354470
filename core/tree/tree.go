package tree

import (
	"sort"

	"scorebook/core/store"
	"scorebook/core/utils"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds tree traversal. Stage trees in practice are 2-3
// levels deep; anything past this is malformed input.
const DefaultMaxDepth = 10

// Level describes one mirrored layer of a flat row, most specific first.
// A stage row read for an event carries the event-stage columns, the
// venue-stage columns and the format-stage columns side by side; each layer
// has its own id and its own same-layer parent reference.
type Level struct {
	// Name labels the level in logs.
	Name string
	// IDColumn holds the level's node id.
	IDColumn string
	// ParentColumn holds the id of the node's parent within the same level.
	ParentColumn string
}

// ChildSet describes a one-to-many collection fanned out by a join, such as
// the scores attached to a stage. Columns carrying the child's fields share
// a prefix; IDColumn (prefix included) identifies the child row for
// deduplication.
type ChildSet struct {
	Name     string
	IDColumn string
	Prefix   string
}

// Spec configures a forest build.
type Spec struct {
	Levels   []Level
	Children []ChildSet
	MaxDepth int
}

// Node is one member of a built forest. Row carries the node's own columns
// (all levels merged), Children the deduplicated child collections, and
// SubNodes the nested nodes in sibling order.
type Node struct {
	ID       string
	ParentID string
	Row      store.Row
	Children map[string][]store.Row
	SubNodes []*Node

	parent    *Node
	childSeen map[string]map[string]bool
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, sub := range n.SubNodes {
		total += sub.Count()
	}
	return total
}

// Walk visits n and every descendant in depth-first sibling order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, sub := range n.SubNodes {
		sub.Walk(visit)
	}
}

// Builder reconstructs nested forests from flat rows.
type Builder struct {
	log *zap.Logger
}

// NewBuilder creates a Builder. A nil logger disables diagnostics.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// BuildForest turns flat rows into a forest of nested nodes.
//
// The group pass derives each node's identity from the most specific level
// with a non-empty id and deduplicates rows fanned out by child collections.
// The link pass attaches nodes to their parents when the parent is part of
// the result set and promotes them to roots when it is not, so scoped
// queries stay complete. Roots and siblings come back ordered by their
// number column when present, input order otherwise.
func (b *Builder) BuildForest(rows []store.Row, spec Spec) []*Node {
	maxDepth := spec.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// group pass
	seen := map[string]*Node{}
	order := make([]*Node, 0, len(rows))
	for _, row := range rows {
		id, levelIdx := identify(row, spec.Levels)
		if id == "" {
			b.log.Warn("Dropping row with no identity at any level")
			continue
		}

		node, ok := seen[id]
		if !ok {
			node = &Node{
				ID:        id,
				ParentID:  parentOf(row, spec.Levels[levelIdx]),
				Row:       ownColumns(row, spec.Children),
				Children:  map[string][]store.Row{},
				childSeen: map[string]map[string]bool{},
			}
			seen[id] = node
			order = append(order, node)
		}

		for _, cs := range spec.Children {
			b.collectChild(node, row, cs)
		}
	}

	// link pass
	var roots []*Node
	for _, node := range order {
		if node.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := seen[node.ParentID]
		if !ok {
			b.log.Debug("Parent outside result set, promoting node to root",
				zap.String("node", node.ID), zap.String("parent", node.ParentID))
			roots = append(roots, node)
			continue
		}
		if parent == node || climbsTooFar(parent, node, maxDepth) {
			b.log.Warn("Cycle or excessive depth, promoting node to root",
				zap.String("node", node.ID), zap.String("parent", node.ParentID))
			roots = append(roots, node)
			continue
		}
		node.parent = parent
		parent.SubNodes = append(parent.SubNodes, node)
	}

	for _, node := range order {
		sortByNumber(node.SubNodes)
	}
	sortByNumber(roots)
	return roots
}

// collectChild extracts one child row by prefix and appends it if unseen.
func (b *Builder) collectChild(node *Node, row store.Row, cs ChildSet) {
	childID := utils.ToString(row[cs.IDColumn])
	if childID == "" {
		return
	}
	if node.childSeen[cs.Name] == nil {
		node.childSeen[cs.Name] = map[string]bool{}
	}
	if node.childSeen[cs.Name][childID] {
		b.log.Debug("Deduplicated fanned-out child row",
			zap.String("node", node.ID), zap.String("collection", cs.Name), zap.String("child", childID))
		return
	}
	node.childSeen[cs.Name][childID] = true

	child := store.Row{}
	for col, val := range row {
		if stripped, ok := cutPrefix(col, cs.Prefix); ok {
			child[stripped] = val
		}
	}
	node.Children[cs.Name] = append(node.Children[cs.Name], child)
}

// identify returns the node id from the most specific level that has one.
func identify(row store.Row, levels []Level) (string, int) {
	for i, level := range levels {
		if id := utils.ToString(row[level.IDColumn]); id != "" {
			return id, i
		}
	}
	return "", -1
}

// parentOf reads the parent reference of the level that supplied the
// identity. Mirrored levels agree on structure, so less specific levels
// never override it.
func parentOf(row store.Row, level Level) string {
	if level.ParentColumn == "" {
		return ""
	}
	return utils.ToString(row[level.ParentColumn])
}

// ownColumns copies the row minus child-collection columns.
func ownColumns(row store.Row, children []ChildSet) store.Row {
	own := make(store.Row, len(row))
	for col, val := range row {
		prefixed := false
		for _, cs := range children {
			if _, ok := cutPrefix(col, cs.Prefix); ok {
				prefixed = true
				break
			}
		}
		if !prefixed {
			own[col] = val
		}
	}
	return own
}

// climbsTooFar walks up from parent; attaching node under it must not
// revisit node (cycle) or exceed maxDepth.
func climbsTooFar(parent, node *Node, maxDepth int) bool {
	depth := 1
	for p := parent; p != nil; p = p.parent {
		if p == node {
			return true
		}
		depth++
		if depth > maxDepth {
			return true
		}
	}
	return false
}

func sortByNumber(nodes []*Node) {
	if len(nodes) < 2 {
		return
	}
	if _, ok := nodes[0].Row["number"]; !ok {
		return
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return utils.ToFloat(nodes[i].Row["number"]) < utils.ToFloat(nodes[j].Row["number"])
	})
}

func cutPrefix(s, prefix string) (string, bool) {
	if prefix == "" || len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return s, false
	}
	return s[len(prefix):], true
}
