package sync_test

import (
	"context"
	"testing"

	"scorebook/core/database"
	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/core/utils"
	"scorebook/feature/catalog"
	"scorebook/feature/event"
	"scorebook/feature/golf"
	"scorebook/feature/roster"
	"scorebook/feature/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// device is one independent local store with the services needed to seed
// and inspect it.
type device struct {
	store     store.Store
	engine    *upsert.Engine
	sync      *sync.Service
	catalog   *catalog.Service
	roster    *roster.Service
	events    *event.Service
	storageID string
}

func newDevice(t *testing.T) *device {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	local, err := database.EnsureLocalStorage(db, "")
	require.NoError(t, err)

	s := store.NewGorm(db)
	engine := upsert.New(s, zap.NewNop())
	registry := scoring.NewRegistry(s, engine, zap.NewNop())
	require.NoError(t, registry.Register(golf.New()))

	return &device{
		store:     s,
		engine:    engine,
		sync:      sync.NewService(s, engine, zap.NewNop()),
		catalog:   catalog.NewService(s, engine, registry, zap.NewNop()),
		roster:    roster.NewService(s, engine, zap.NewNop()),
		events:    event.NewService(s, engine, registry, zap.NewNop()),
		storageID: local.ID,
	}
}

func holeScores(p1, p2 string, raw1, raw2 float64) []event.ScoreInput {
	return []event.ScoreInput{
		{ParticipantID: p1, RawValue: utils.Ptr(raw1), Completed: utils.Ptr(true)},
		{ParticipantID: p2, RawValue: utils.Ptr(raw2), Completed: utils.Ptr(true)},
	}
}

// seedRound builds a complete store: one sport, one 3-hole format at one
// venue, one event with two players and a full card.
func seedRound(t *testing.T, d *device) string {
	t.Helper()
	ctx := context.Background()

	sport, err := d.catalog.CreateSport(ctx, catalog.SportInput{Name: "golf"})
	require.NoError(t, err)
	format, err := d.catalog.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		SportID: sport.ID, Name: "Club Round", StageCount: 3,
	})
	require.NoError(t, err)
	venue, err := d.catalog.CreateVenue(ctx, catalog.VenueInput{Name: "Old Links"})
	require.NoError(t, err)
	reg, err := d.catalog.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	require.NoError(t, err)

	players := make([]string, 0, 2)
	for _, name := range []string{"Ann", "Ben"} {
		p, err := d.roster.UpsertParticipant(ctx, roster.ParticipantInput{Name: name})
		require.NoError(t, err)
		players = append(players, p.ID)
	}

	created, err := d.events.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
		Name:               "Saturday Medal",
		ParticipantIDs:     players,
	})
	require.NoError(t, err)
	_, err = d.events.UpsertEventWithDetails(ctx, created.ID, event.EventInput{
		Stages: []event.StageInput{
			{Number: 1, Scores: holeScores(players[0], players[1], 4, 5)},
			{Number: 2, Scores: holeScores(players[0], players[1], 3, 4)},
			{Number: 3, Scores: holeScores(players[0], players[1], 4, 4)},
		},
	})
	require.NoError(t, err)
	return created.ID
}

func rowCount(t *testing.T, d *device, table string) int64 {
	t.Helper()
	n, err := d.store.Count(context.Background(), table, store.NewQuery())
	require.NoError(t, err)
	return n
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := newDevice(t)
	b := newDevice(t)
	ctx := context.Background()
	eventID := seedRound(t, a)

	snap, err := a.sync.Export(ctx, sync.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, sync.SnapshotVersion, snap.Version)
	assert.Equal(t, a.storageID, snap.StorageID)
	assert.NotZero(t, snap.ExportedAt)
	assert.Len(t, snap.Tables[schema.TableSports], 1)
	assert.Len(t, snap.Tables[schema.TableScores], 6)

	// identity bookkeeping never leaves the device
	_, leaked := snap.Tables[schema.TableMergeEntries]
	assert.False(t, leaked)
	_, leaked = snap.Tables[schema.TableStorages]
	assert.False(t, leaked)

	report, err := b.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Errors)
	assert.Equal(t, sync.StrategyMerge, report.Strategy)
	assert.Equal(t, 1, report.Tables[schema.TableSports].Imported)
	assert.Equal(t, 1, report.Tables[schema.TableVenues].Imported)
	assert.Equal(t, 2, report.Tables[schema.TableParticipants].Imported)
	assert.Equal(t, 1, report.Tables[schema.TableEvents].Imported)
	assert.Equal(t, 3, report.Tables[schema.TableEventStages].Imported)
	assert.Equal(t, 6, report.Tables[schema.TableScores].Imported)

	// one merge entry per imported row, none for the merge table itself
	total := report.Totals()
	assert.EqualValues(t, total.Imported, rowCount(t, b, schema.TableMergeEntries))

	// the event lives under a freshly minted local id
	rows, err := b.store.Select(ctx, schema.TableEvents, store.NewQuery())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	bEventID := utils.ToString(rows[0]["id"])
	assert.NotEqual(t, eventID, bEventID)

	// the whole aggregate is navigable on the importing device
	details, err := b.events.GetEventDetails(ctx, bEventID)
	require.NoError(t, err)
	require.Len(t, details.Participants, 2)
	require.Len(t, details.Stages, 3)
	for _, st := range details.Stages {
		require.NotNil(t, st.Venue)
		require.NotNil(t, st.Format)
		assert.Len(t, st.Scores, 2)
	}

	// and it scores identically on both devices
	aResults, err := a.events.ScoreEvent(ctx, eventID)
	require.NoError(t, err)
	bResults, err := b.events.ScoreEvent(ctx, bEventID)
	require.NoError(t, err)
	assert.Equal(t, aResults.Method, bResults.Method)
	require.Len(t, bResults.Participants, 2)
	assert.Equal(t, aResults.Participants[0].TotalPoints, bResults.Participants[0].TotalPoints)
	assert.Equal(t, aResults.Participants[1].TotalPoints, bResults.Participants[1].TotalPoints)
	assert.Equal(t, aResults.Stats, bResults.Stats)

	// re-importing the identical snapshot is a no-op
	again, err := b.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	assert.Empty(t, again.Errors)
	assert.Equal(t, 0, again.Totals().Imported)
	assert.Equal(t, total.Imported, again.Totals().Merged)
	assert.EqualValues(t, total.Imported, rowCount(t, b, schema.TableMergeEntries))
	assert.EqualValues(t, 1, rowCount(t, b, schema.TableSports))
	assert.EqualValues(t, 6, rowCount(t, b, schema.TableScores))
}

func TestImportStrategies(t *testing.T) {
	a := newDevice(t)
	b := newDevice(t)
	ctx := context.Background()

	venue, err := a.catalog.CreateVenue(ctx, catalog.VenueInput{
		Name:     "Old Links",
		Metadata: map[string]any{"color": "red", "shared": "a"},
	})
	require.NoError(t, err)
	_ = venue

	snap, err := a.sync.Export(ctx, sync.ExportOptions{Tables: []string{schema.TableVenues}})
	require.NoError(t, err)

	report, err := b.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Tables[schema.TableVenues].Imported)

	rows, err := b.store.Select(ctx, schema.TableVenues, store.NewQuery())
	require.NoError(t, err)
	localID := utils.ToString(rows[0]["id"])

	// local edits between syncs
	require.NoError(t, b.store.Update(ctx, schema.TableVenues, localID, store.Row{
		"name":     "Renamed",
		"notes":    "local note",
		"metadata": map[string]any{"color": "blue", "keep": "mine"},
	}))

	// skip leaves the local row alone
	report, err = b.sync.Import(ctx, snap, sync.ImportOptions{Strategy: sync.StrategySkip})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[schema.TableVenues].Skipped)

	var v schema.Venue
	row, err := b.store.SelectOne(ctx, schema.TableVenues, store.ByID(localID))
	require.NoError(t, err)
	require.NoError(t, store.ScanRow(row, &v))
	assert.Equal(t, "Renamed", *v.Name)

	// merge folds incoming fields over local ones: supplied fields win,
	// untouched fields and metadata keys survive
	report, err = b.sync.Import(ctx, snap, sync.ImportOptions{Strategy: sync.StrategyMerge})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[schema.TableVenues].Merged)

	row, err = b.store.SelectOne(ctx, schema.TableVenues, store.ByID(localID))
	require.NoError(t, err)
	require.NoError(t, store.ScanRow(row, &v))
	assert.Equal(t, "Old Links", *v.Name)
	require.NotNil(t, v.Notes)
	assert.Equal(t, "local note", *v.Notes)
	assert.EqualValues(t, "red", v.Metadata["color"])
	assert.EqualValues(t, "mine", v.Metadata["keep"])
	assert.EqualValues(t, "a", v.Metadata["shared"])

	// overwrite replaces the row wholesale, local-only values included
	report, err = b.sync.Import(ctx, snap, sync.ImportOptions{Strategy: sync.StrategyOverwrite})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[schema.TableVenues].Merged)

	row, err = b.store.SelectOne(ctx, schema.TableVenues, store.ByID(localID))
	require.NoError(t, err)
	require.NoError(t, store.ScanRow(row, &v))
	assert.Equal(t, "Old Links", *v.Name)
	assert.Nil(t, v.Notes)
	assert.EqualValues(t, "red", v.Metadata["color"])
	_, kept := v.Metadata["keep"]
	assert.False(t, kept)
}

func TestImportDryRunWritesNothing(t *testing.T) {
	a := newDevice(t)
	b := newDevice(t)
	ctx := context.Background()
	seedRound(t, a)

	snap, err := a.sync.Export(ctx, sync.ExportOptions{})
	require.NoError(t, err)

	report, err := b.sync.Import(ctx, snap, sync.ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 6, report.Tables[schema.TableScores].Imported)
	assert.Positive(t, report.Totals().Imported)

	for _, table := range schema.SyncedTables() {
		assert.Zero(t, rowCount(t, b, table), table)
	}
	assert.Zero(t, rowCount(t, b, schema.TableMergeEntries))
}

func TestExportSubsetAndStrip(t *testing.T) {
	a := newDevice(t)
	ctx := context.Background()

	_, err := a.catalog.CreateSport(ctx, catalog.SportInput{Name: "golf"})
	require.NoError(t, err)
	_, err = a.catalog.CreateVenue(ctx, catalog.VenueInput{
		Name:     "Old Links",
		Metadata: map[string]any{"color": "red"},
	})
	require.NoError(t, err)

	snap, err := a.sync.Export(ctx, sync.ExportOptions{
		Tables:        []string{schema.TableVenues},
		StripMetadata: true,
	})
	require.NoError(t, err)
	require.Len(t, snap.Tables, 1)
	rows := snap.Tables[schema.TableVenues]
	require.Len(t, rows, 1)
	_, hasMeta := rows[0]["metadata"]
	assert.False(t, hasMeta)

	_, err = a.sync.Export(ctx, sync.ExportOptions{Tables: []string{"merge_entries"}})
	assert.True(t, errs.IsValidation(err))
	_, err = a.sync.Export(ctx, sync.ExportOptions{Tables: []string{"nonsense"}})
	assert.True(t, errs.IsValidation(err))
}

func TestImportOwnSnapshotRestores(t *testing.T) {
	a := newDevice(t)
	ctx := context.Background()
	eventID := seedRound(t, a)

	snap, err := a.sync.Export(ctx, sync.ExportOptions{})
	require.NoError(t, err)
	require.NoError(t, a.events.DeleteEvent(ctx, eventID))

	report, err := a.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Errors)

	// deleted rows come back under their original ids, surviving rows merge
	assert.Equal(t, 1, report.Tables[schema.TableEvents].Imported)
	assert.Equal(t, 3, report.Tables[schema.TableEventStages].Imported)
	assert.Equal(t, 6, report.Tables[schema.TableScores].Imported)
	assert.Equal(t, 2, report.Tables[schema.TableEventParticipants].Imported)
	assert.Equal(t, 1, report.Tables[schema.TableSports].Merged)

	// a store's own rows need no identity mapping
	assert.Zero(t, rowCount(t, a, schema.TableMergeEntries))

	details, err := a.events.GetEventDetails(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, details.Stages, 3)
	for _, st := range details.Stages {
		assert.Len(t, st.Scores, 2)
	}
}

func TestImportIsolatesRowFailures(t *testing.T) {
	b := newDevice(t)
	ctx := context.Background()

	snap := &sync.Snapshot{
		Version:   sync.SnapshotVersion,
		StorageID: "0dc9ed66-8c8d-4c47-a6ba-3bc2aa77e615",
		Tables: map[string][]store.Row{
			schema.TableSports: {
				{"id": "11111111-1111-1111-1111-111111111111", "name": "golf"},
			},
			schema.TableEvents: {
				{"id": "22222222-2222-2222-2222-222222222222", "venue_event_format_id": "ghost", "status": "scheduled"},
			},
		},
	}

	report, err := b.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[schema.TableSports].Imported)
	assert.Equal(t, 1, report.Tables[schema.TableEvents].Errors)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, schema.TableEvents, report.Errors[0].Table)
	assert.Contains(t, report.Errors[0].Message, "unresolved reference")

	assert.EqualValues(t, 1, rowCount(t, b, schema.TableSports))
	assert.Zero(t, rowCount(t, b, schema.TableEvents))

	// the failed row earned no identity mapping, so a fixed snapshot can land it later
	assert.EqualValues(t, 1, rowCount(t, b, schema.TableMergeEntries))
}

func TestImportReportsSeedCollision(t *testing.T) {
	a := newDevice(t)
	b := newDevice(t)
	ctx := context.Background()

	_, err := a.catalog.CreateSport(ctx, catalog.SportInput{Name: "golf"})
	require.NoError(t, err)
	_, err = b.catalog.CreateSport(ctx, catalog.SportInput{Name: "golf"})
	require.NoError(t, err)

	snap, err := a.sync.Export(ctx, sync.ExportOptions{Tables: []string{schema.TableSports}})
	require.NoError(t, err)

	// both devices seeded the sport independently; the unique name clashes
	// and the row lands in the error list instead of aborting the import
	report, err := b.sync.Import(ctx, snap, sync.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[schema.TableSports].Errors)
	assert.EqualValues(t, 1, rowCount(t, b, schema.TableSports))
}

func TestImportValidation(t *testing.T) {
	b := newDevice(t)
	ctx := context.Background()

	_, err := b.sync.Import(ctx, &sync.Snapshot{Version: "2", StorageID: "x"}, sync.ImportOptions{})
	assert.True(t, errs.IsValidation(err))

	_, err = b.sync.Import(ctx, &sync.Snapshot{Version: sync.SnapshotVersion}, sync.ImportOptions{})
	assert.True(t, errs.IsValidation(err))

	_, err = b.sync.Import(ctx, &sync.Snapshot{Version: sync.SnapshotVersion, StorageID: "x"},
		sync.ImportOptions{Strategy: "upsertish"})
	assert.True(t, errs.IsValidation(err))

	// identity bookkeeping is not importable
	report, err := b.sync.Import(ctx, &sync.Snapshot{
		Version:   sync.SnapshotVersion,
		StorageID: "66666666-7777-8888-9999-aaaaaaaaaaaa",
		Tables: map[string][]store.Row{
			schema.TableMergeEntries: {{"id": "x"}},
		},
	}, sync.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Message, "not an importable table")
	assert.Zero(t, rowCount(t, b, schema.TableMergeEntries))
}
