// Package golf is the reference sport plugin: stages are holes carrying a
// par in their metadata, raw values are stroke counts.
//
// Two scoring methods ship with it. Stroke play sums strokes and ranks
// ascending; stableford converts each hole to points against par and ranks
// descending. Both classify raw values with the traditional names (birdie,
// eagle, bogey, ...) relative to the hole's par.
package golf
