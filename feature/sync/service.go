package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service exports and imports whole-store snapshots. Imports run through
// the merge-entry map so every foreign row keeps one permanent local
// identity, no matter how often it arrives.
type Service struct {
	store  store.Store
	engine *upsert.Engine
	logger *zap.Logger
}

// NewService creates a new sync service.
func NewService(s store.Store, engine *upsert.Engine, logger *zap.Logger) *Service {
	return &Service{store: s, engine: engine, logger: logger}
}

// Export produces a snapshot of the local store: every requested table's
// rows in registry dependency order, oldest first, stamped with the local
// storage id. Merge entries and the storage table itself never leave the
// device.
func (s *Service) Export(ctx context.Context, opts ExportOptions) (*Snapshot, error) {
	local, err := s.localStorage(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := snapshotTables(opts.Tables)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now().UnixMilli(),
		StorageID:  utils.ToString(local["id"]),
		Tables:     make(map[string][]store.Row, len(tables)),
	}
	rowCount := 0
	for _, table := range tables {
		rows, err := s.store.Select(ctx, table, store.NewQuery().OrderBy("created_at", false))
		if err != nil {
			return nil, err
		}
		if opts.StripMetadata {
			for _, row := range rows {
				delete(row, "metadata")
			}
		}
		snap.Tables[table] = rows
		rowCount += len(rows)
	}

	s.logger.Info("Exported snapshot",
		zap.String("storageId", snap.StorageID),
		zap.Int("tables", len(tables)),
		zap.Int("rows", rowCount))
	return snap, nil
}

// Import folds a snapshot into the local store. Tables are processed in
// registry dependency order, each in two passes: the first resolves or
// mints a local id for every row, the second writes rows with all
// reference columns remapped through the id map, so self-references and
// references into earlier tables always point at local rows. Rows whose
// foreign id is already mapped follow the configured strategy; row
// failures are collected in the report and never abort the rest.
func (s *Service) Import(ctx context.Context, snap *Snapshot, opts ImportOptions) (*Report, error) {
	if snap == nil {
		return nil, errs.Invalid("snapshot", "body", "must not be empty")
	}
	if snap.Version != SnapshotVersion {
		return nil, errs.Invalid("snapshot", "version",
			fmt.Sprintf("unsupported snapshot version %q", snap.Version))
	}
	if snap.StorageID == "" {
		return nil, errs.Invalid("snapshot", "storageId", "must not be empty")
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyMerge
	}
	switch strategy {
	case StrategySkip, StrategyOverwrite, StrategyMerge:
	default:
		return nil, errs.Invalid("snapshot", "strategy",
			fmt.Sprintf("unknown import strategy %q", opts.Strategy))
	}

	local, err := s.localStorage(ctx)
	if err != nil {
		return nil, err
	}
	localID := utils.ToString(local["id"])

	report := &Report{Strategy: strategy, DryRun: opts.DryRun, Tables: map[string]*TableCounts{}}
	for _, name := range snapshotTableNames(snap) {
		if t, ok := schema.TableByName(name); !ok || !t.Synced {
			report.addError(name, "", "not an importable table")
		}
	}

	ids := &idMap{
		store:     s.store,
		storageID: snap.StorageID,
		own:       snap.StorageID == localID,
		assigned:  map[string]string{},
	}

	// a foreign device's storage row is kept locally so merge entries stay
	// attributable
	if !ids.own && !opts.DryRun {
		if _, err := s.engine.Upsert(ctx, schema.TableStorages,
			store.Row{"id": snap.StorageID, "is_local": false}, nil); err != nil {
			return nil, err
		}
	}

	for _, table := range schema.SyncedTables() {
		rows := snap.Tables[table]
		if len(rows) == 0 {
			continue
		}
		s.importTable(ctx, report, ids, table, rows, strategy, opts)
	}

	totals := report.Totals()
	s.logger.Info("Imported snapshot",
		zap.String("storageId", snap.StorageID),
		zap.String("strategy", strategy),
		zap.Bool("dryRun", opts.DryRun),
		zap.Int("imported", totals.Imported),
		zap.Int("merged", totals.Merged),
		zap.Int("skipped", totals.Skipped),
		zap.Int("errors", totals.Errors))
	return report, nil
}

type rowPlan struct {
	row       store.Row
	foreignID string
	localID   string
	known     bool
}

func (s *Service) importTable(ctx context.Context, report *Report, ids *idMap, table string, rows []store.Row, strategy string, opts ImportOptions) {
	counts := report.counts(table)

	// first pass: every row gets its local identity before any row is
	// written, so references within the table resolve regardless of order
	plans := make([]rowPlan, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		foreignID := utils.ToString(row["id"])
		if foreignID == "" {
			report.addError(table, "", "row carries no id")
			continue
		}
		if seen[foreignID] {
			report.addError(table, foreignID, "row id appears twice in the snapshot")
			continue
		}
		seen[foreignID] = true
		localID, known, err := ids.lookup(ctx, table, foreignID)
		if err != nil {
			report.addError(table, foreignID, err.Error())
			continue
		}
		plans = append(plans, rowPlan{row: row, foreignID: foreignID, localID: localID, known: known})
	}

	// second pass: remap and write
	for _, plan := range plans {
		remapped, err := s.remapRow(ctx, ids, table, plan)
		if err != nil {
			s.failRow(report, ids, table, plan, err)
			continue
		}

		switch {
		case !plan.known:
			if !opts.DryRun {
				if err := s.store.Insert(ctx, table, remapped); err != nil {
					s.failRow(report, ids, table, plan, err)
					continue
				}
				if !ids.own && !opts.NoMergeEntries {
					if err := s.recordMergeEntry(ctx, ids.storageID, table, plan); err != nil {
						s.failRow(report, ids, table, plan, err)
						continue
					}
				}
			}
			counts.Imported++

		case strategy == StrategySkip:
			counts.Skipped++

		case strategy == StrategyOverwrite:
			if !opts.DryRun {
				changes := make(store.Row, len(remapped))
				for col, val := range remapped {
					if col == "id" || col == "created_at" || col == "updated_at" {
						continue
					}
					changes[col] = val
				}
				if err := s.store.Update(ctx, table, plan.localID, changes); err != nil {
					s.failRow(report, ids, table, plan, err)
					continue
				}
			}
			counts.Merged++

		default: // StrategyMerge
			if opts.DryRun {
				counts.Merged++
				continue
			}
			if err := s.mergeMetadata(ctx, table, plan.localID, remapped); err != nil {
				s.failRow(report, ids, table, plan, err)
				continue
			}
			res, err := s.engine.Upsert(ctx, table, remapped, nil)
			if err != nil {
				s.failRow(report, ids, table, plan, err)
				continue
			}
			// a mapped row deleted locally since the last import comes back
			if res.Outcome == upsert.Inserted {
				counts.Imported++
			} else {
				counts.Merged++
			}
		}
	}
}

// failRow records a row failure. A row minted this run loses its id
// assignment again, so rows referencing it fail loudly instead of landing
// as orphans.
func (s *Service) failRow(report *Report, ids *idMap, table string, plan rowPlan, err error) {
	report.addError(table, plan.foreignID, err.Error())
	if !plan.known {
		ids.unassign(plan.foreignID)
	}
	s.logger.Warn("Skipped snapshot row",
		zap.String("table", table),
		zap.String("foreignId", plan.foreignID),
		zap.Error(err))
}

// remapRow copies a snapshot row, swaps its id for the local one and routes
// every reference column through the id map.
func (s *Service) remapRow(ctx context.Context, ids *idMap, table string, plan rowPlan) (store.Row, error) {
	entry, _ := schema.TableByName(table)

	remapped := make(store.Row, len(plan.row))
	for col, val := range plan.row {
		remapped[col] = val
	}
	remapped["id"] = plan.localID

	for _, col := range entry.RefColumns {
		ref := utils.ToString(remapped[col])
		if ref == "" {
			continue
		}
		mapped, ok, err := ids.ref(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unresolved reference %s=%s", col, ref)
		}
		remapped[col] = mapped
	}
	return remapped, nil
}

// mergeMetadata folds the incoming metadata over the local row's map key by
// key before the upsert, so untouched local keys survive while incoming
// keys win.
func (s *Service) mergeMetadata(ctx context.Context, table, localID string, remapped store.Row) error {
	incoming := asMetadata(remapped["metadata"])
	if incoming == nil {
		return nil
	}
	existing, err := s.store.SelectOne(ctx, table, store.ByID(localID))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil
		}
		return err
	}
	remapped["metadata"] = utils.MergeMaps(asMetadata(existing["metadata"]), incoming)
	return nil
}

func (s *Service) recordMergeEntry(ctx context.Context, storageID, table string, plan rowPlan) error {
	return s.store.Insert(ctx, schema.TableMergeEntries, store.RowOf(schema.MergeEntry{
		ID:               uuid.NewString(),
		ForeignStorageID: storageID,
		ForeignID:        plan.foreignID,
		RefTable:         table,
		LocalID:          plan.localID,
	}))
}

func (s *Service) localStorage(ctx context.Context) (store.Row, error) {
	row, err := s.store.SelectOne(ctx, schema.TableStorages, store.NewQuery().Eq("is_local", true))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Invalid("storage", "isLocal", "no local storage row; the store was never initialized")
		}
		return nil, err
	}
	return row, nil
}

// idMap resolves foreign row ids to local ids: first through the ids
// assigned during this import, then through the persisted merge entries.
// For a store's own snapshot the mapping is the identity.
type idMap struct {
	store     store.Store
	storageID string
	own       bool
	assigned  map[string]string
}

// lookup resolves the local identity for a row arriving from the snapshot.
// known reports whether the identity existed before this import.
func (m *idMap) lookup(ctx context.Context, table, foreignID string) (string, bool, error) {
	if m.own {
		_, err := m.store.SelectOne(ctx, table, store.ByID(foreignID))
		if err == nil {
			return foreignID, true, nil
		}
		if errs.IsNotFound(err) {
			return foreignID, false, nil
		}
		return "", false, err
	}

	row, err := m.store.SelectOne(ctx, schema.TableMergeEntries, store.NewQuery().
		Eq("foreign_storage_id", m.storageID).
		Eq("foreign_id", foreignID))
	if err == nil {
		refTable := utils.ToString(row["ref_table"])
		if refTable != table {
			return "", false, errs.Conflict(schema.TableMergeEntries, "ref_table",
				fmt.Sprintf("%s mapped to %s, row arrived for %s", foreignID, refTable, table))
		}
		localID := utils.ToString(row["local_id"])
		m.assigned[foreignID] = localID
		return localID, true, nil
	}
	if !errs.IsNotFound(err) {
		return "", false, err
	}

	localID := uuid.NewString()
	m.assigned[foreignID] = localID
	return localID, false, nil
}

// ref resolves a reference column value. Unlike lookup it never mints:
// a reference must point at a row that is mapped, either in this import or
// by an earlier one.
func (m *idMap) ref(ctx context.Context, foreignID string) (string, bool, error) {
	if m.own {
		return foreignID, true, nil
	}
	if localID, ok := m.assigned[foreignID]; ok {
		return localID, true, nil
	}

	row, err := m.store.SelectOne(ctx, schema.TableMergeEntries, store.NewQuery().
		Eq("foreign_storage_id", m.storageID).
		Eq("foreign_id", foreignID))
	if err == nil {
		localID := utils.ToString(row["local_id"])
		m.assigned[foreignID] = localID
		return localID, true, nil
	}
	if errs.IsNotFound(err) {
		return "", false, nil
	}
	return "", false, err
}

func (m *idMap) unassign(foreignID string) {
	delete(m.assigned, foreignID)
}

// snapshotTables resolves the requested table subset against the registry,
// keeping dependency order. Empty means every snapshot-eligible table.
func snapshotTables(requested []string) ([]string, error) {
	all := schema.SyncedTables()
	if len(requested) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := schema.TableByName(name)
		if !ok || !t.Synced {
			return nil, errs.Invalid("snapshot", "tables", name+" is not a snapshot table")
		}
		want[name] = true
	}
	tables := make([]string, 0, len(want))
	for _, name := range all {
		if want[name] {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

func snapshotTableNames(snap *Snapshot) []string {
	names := make([]string, 0, len(snap.Tables))
	for name := range snap.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func asMetadata(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case datatypes.JSONMap:
		return map[string]any(m)
	}
	return nil
}
