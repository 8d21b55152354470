// Package tree reconstructs nested forests from flat relational rows.
//
// Stage trees and team trees live in the database as flat rows with parent
// references. Reading them back joins or merges up to three mirrored levels
// (event stage, venue stage, format stage) plus fanned-out child collections
// such as scores. The Builder undoes that flattening in three passes:
//
//  1. Group: one node per distinct identity, where identity is the most
//     specific level carrying an id; fanned-out duplicates only contribute
//     previously-unseen child rows.
//  2. Link: each node attaches to its parent when the parent is in the
//     result set, and is promoted to a root when it is not, so a scoped
//     query ("stages of one format") still returns a complete forest.
//  3. Roots: join-based forests root at nodes with no in-scope parent;
//     edge-based forests (teams) root at nodes never referenced as a child,
//     falling back to the full set when everything is referenced.
//
// Traversal depth is capped and cycles are logged and truncated, never
// followed.
package tree
