package sync

import "scorebook/core/store"

// SnapshotVersion is the payload version this build reads and writes.
const SnapshotVersion = "1"

// Snapshot is the whole-store transfer payload: every snapshot-eligible
// table's rows keyed by table name, stamped with the exporting storage's
// permanent id. How the payload travels between devices is up to the caller.
type Snapshot struct {
	Version    string                 `json:"version"`
	ExportedAt int64                  `json:"exportedAt"`
	StorageID  string                 `json:"storageId"`
	Tables     map[string][]store.Row `json:"tables"`
}

// ExportOptions narrows an export. An empty Tables list exports every
// snapshot-eligible table; StripMetadata drops the free-form metadata column
// from every row.
type ExportOptions struct {
	Tables        []string
	StripMetadata bool
}

// Import strategies for rows whose foreign id is already mapped locally.
const (
	// StrategySkip leaves the local row untouched.
	StrategySkip = "skip"
	// StrategyOverwrite replaces the local row's fields wholesale.
	StrategyOverwrite = "overwrite"
	// StrategyMerge folds incoming fields over local ones: absent fields
	// stay, metadata merges key by key with the incoming value winning.
	StrategyMerge = "merge"
)

// ImportOptions steer an import. DryRun plans the whole import, including
// reference resolution, without writing anything. NoMergeEntries imports
// rows without recording identity mappings, so a later import of the same
// snapshot duplicates them; it exists for one-off seeding.
type ImportOptions struct {
	Strategy       string
	DryRun         bool
	NoMergeEntries bool
}

// TableCounts tallies what an import did to one table.
type TableCounts struct {
	Imported int `json:"imported"`
	Merged   int `json:"merged"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// RowError is one row the import could not place. Failures are collected,
// never raised: a broken row must not sink the rest of a snapshot.
type RowError struct {
	Table   string `json:"table"`
	RowID   string `json:"rowId,omitempty"`
	Message string `json:"message"`
}

// Report is the outcome of an import: per-table counts plus every row that
// failed. A dry-run report carries the same counts the real import would.
type Report struct {
	Strategy string                  `json:"strategy"`
	DryRun   bool                    `json:"dryRun"`
	Tables   map[string]*TableCounts `json:"tables"`
	Errors   []RowError              `json:"errors,omitempty"`
}

func (r *Report) counts(table string) *TableCounts {
	c, ok := r.Tables[table]
	if !ok {
		c = &TableCounts{}
		r.Tables[table] = c
	}
	return c
}

func (r *Report) addError(table, rowID, message string) {
	r.counts(table).Errors++
	r.Errors = append(r.Errors, RowError{Table: table, RowID: rowID, Message: message})
}

// Totals folds every table's counts into one.
func (r *Report) Totals() TableCounts {
	var total TableCounts
	for _, c := range r.Tables {
		total.Imported += c.Imported
		total.Merged += c.Merged
		total.Skipped += c.Skipped
		total.Errors += c.Errors
	}
	return total
}
