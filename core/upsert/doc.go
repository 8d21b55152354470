// Package upsert implements the reconciling write primitives every
// higher-level operation is built from.
//
// A single Upsert resolves the existing row (by id, falling back to an
// alternate condition), diffs field by field and writes only when something
// actually changed, reporting Inserted, Updated or Unchanged. The diff
// treats nil and absent as the same non-value, so partial records never
// null out fields, and re-running the identical call is always a no-op.
//
// ReplaceChildren lifts that to a child collection: the supplied rows
// become the complete set under the parent scope. Matched children keep
// their identifiers, new ones are inserted, and persisted children missing
// from the supplied set are pruned, with an optional hook for cascading
// into dependent tables first.
//
// Nothing here opens a transaction. Every step is idempotent by
// construction, so a caller recovering from a partial failure retries the
// same composite call instead of rolling back.
package upsert
