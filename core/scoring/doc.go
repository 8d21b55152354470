// Package scoring converts raw per-stage values into meaningful results.
//
// Sports plug in as Plugins, each carrying one or more Methods. A method
// owns the three conversions that differ between sports: raw value to
// points, raw value to a score-type label against the stage's metadata,
// and per-stage entries to an event-level aggregate. The package supplies
// the commutative building blocks (Accumulate, Rank, Stats) so method
// implementations stay order-independent without each reinventing the
// bookkeeping.
//
// The Registry ties plugins to the database: EnsureScoreFormats upserts the
// sport row and one score_formats row per method. Re-registering never
// duplicates a row, and a generic score format created before the sport
// existed is promoted to sport-specific in place, keeping every reference
// to its id valid.
package scoring
