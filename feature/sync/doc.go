// Package sync implements snapshot export and import between independent
// local stores.
//
// Every store owns a permanent storage id. An export bundles the rows of
// all snapshot-eligible tables in registry dependency order; an import
// walks the same order and routes every row through the merge-entry map,
// which permanently binds (foreign storage, foreign id) to one local id.
// Known rows follow a configurable strategy (skip, overwrite or merge),
// unknown rows are inserted under freshly minted ids and recorded, so
// re-importing the same snapshot is a no-op rather than a duplicate.
// Reference columns, including self-referential parent ids, are remapped
// through the same map before anything is written. Row failures are
// collected in the report and never abort the remaining rows.
//
// # Components
//
//   - Service: snapshot assembly, the two-pass import and the id map.
//   - Handler: the HTTP surface.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /sync/export : export the local store as a snapshot
//   - POST /sync/import : fold a snapshot into the local store
package sync
