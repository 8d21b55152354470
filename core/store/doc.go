// Package store is the row-oriented persistence layer the engines build on.
//
// Everything above the database speaks in Rows: column→value maps with
// normalized scalars. The tree builder, the upsert engine and the snapshot
// importer all operate on arbitrary tables, so they cannot work against
// typed models; the Store interface gives them Select/Insert/Update/Delete
// over any registered table while GORM handles dialect differences
// underneath.
//
// # Queries
//
// Query is a conjunction of typed conditions built fluently:
//
//	q := store.NewQuery().Eq("event_id", id).OrderBy("number", false)
//
// A nil value with Eq matches NULL, with Neq it matches NOT NULL. That
// convention matters: the engines treat "column absent" and "column NULL"
// as the same state.
//
// # Row Mapping
//
// RowOf and ScanRow bridge Rows and the typed structs in core/schema using
// the gorm column tags, so features can work with structs at the edges while
// the engines stay generic. The metadata column is the one non-scalar: it is
// JSON text in the database and map[string]any in a Row.
//
// # Testing
//
// mocks/ carries a testify mock of the Store interface; engine tests that
// want real SQL semantics open a SQLite :memory: database instead.
package store
