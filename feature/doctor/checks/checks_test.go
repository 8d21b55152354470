package checks_test

import (
	"context"
	"testing"

	"scorebook/core/database"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/feature/doctor/checks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*store.Gorm, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.NewGorm(db), db
}

func insert(t *testing.T, s store.Store, table string, row store.Row) string {
	t.Helper()
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	require.NoError(t, s.Insert(context.Background(), table, row))
	return row["id"].(string)
}

// seedMirroredEvent fabricates a two-stage venue tree (root + child) and an
// event mirroring it, bypassing the services so rows can be corrupted freely.
func seedMirroredEvent(t *testing.T, s store.Store) (eventID string, stageIDs []string) {
	t.Helper()
	regID := uuid.NewString()
	rootVenue := insert(t, s, schema.TableVenueEventFormatStages, store.Row{
		"venue_event_format_id": regID, "number": 1,
	})
	childVenue := insert(t, s, schema.TableVenueEventFormatStages, store.Row{
		"venue_event_format_id": regID, "number": 1, "parent_id": rootVenue,
	})

	eventID = insert(t, s, schema.TableEvents, store.Row{
		"venue_event_format_id": regID, "status": "scheduled",
	})
	rootStage := insert(t, s, schema.TableEventStages, store.Row{
		"event_id": eventID, "venue_event_format_stage_id": rootVenue, "number": 1,
	})
	childStage := insert(t, s, schema.TableEventStages, store.Row{
		"event_id": eventID, "venue_event_format_stage_id": childVenue, "number": 1, "parent_id": rootStage,
	})
	return eventID, []string{rootStage, childStage}
}

func TestStageMirrorHealthy(t *testing.T) {
	s, _ := newStore(t)
	seedMirroredEvent(t, s)

	faults, checked, err := checks.StageMirror(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, faults)
	assert.Equal(t, 1, checked)
}

func TestStageMirrorFaults(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	eventID, stageIDs := seedMirroredEvent(t, s)

	// an extra stage the venue tree does not know
	insert(t, s, schema.TableEventStages, store.Row{
		"event_id": eventID, "venue_event_format_stage_id": "ghost", "number": 9,
	})
	faults, _, err := checks.StageMirror(ctx, s)
	require.NoError(t, err)
	assert.Len(t, faults, 2, "count mismatch plus unknown binding")

	// wrong sibling number on the child
	_, err = s.Delete(ctx, schema.TableEventStages, store.NewQuery().Eq("venue_event_format_stage_id", "ghost"))
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, schema.TableEventStages, stageIDs[1], store.Row{"number": 7}))
	faults, _, err = checks.StageMirror(ctx, s)
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Contains(t, faults[0], "number")

	// child re-rooted: parent edge no longer mirrors the venue tree
	require.NoError(t, s.Update(ctx, schema.TableEventStages, stageIDs[1], store.Row{"number": 1, "parent_id": nil}))
	faults, _, err = checks.StageMirror(ctx, s)
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Contains(t, faults[0], "parent edge")
}

func TestOrphans(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, stageIDs := seedMirroredEvent(t, s)
	playerID := insert(t, s, schema.TableParticipants, store.Row{"name": "Ann", "is_team": false})
	insert(t, s, schema.TableScores, store.Row{
		"event_stage_id": stageIDs[1], "participant_id": playerID, "completed": true,
	})

	findings, err := checks.Orphans(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, findings)

	// pull the participant out from under the score
	_, err = s.Delete(ctx, schema.TableParticipants, store.ByID(playerID))
	require.NoError(t, err)
	// and strand a stage on a vanished event
	insert(t, s, schema.TableEventStages, store.Row{
		"event_id": "vanished", "venue_event_format_stage_id": "x", "number": 1,
	})
	// and a member whose team never existed
	insert(t, s, schema.TableTeamMembers, store.Row{
		"team_id": "no-team", "participant_id": "no-player",
	})

	findings, err = checks.Orphans(ctx, s)
	require.NoError(t, err)
	assert.Len(t, findings, 4)
}

func TestDuplicates(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()

	insert(t, s, schema.TableMergeEntries, store.Row{
		"foreign_storage_id": "dev-a", "foreign_id": "r1", "ref_table": "venues", "local_id": "l1",
	})
	insert(t, s, schema.TableMergeEntries, store.Row{
		"foreign_storage_id": "dev-a", "foreign_id": "r2", "ref_table": "venues", "local_id": "l2",
	})

	findings, err := checks.Duplicates(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, findings)

	// the doctor exists for stores whose schema lost its guarantees, so
	// drop the unique keys and fabricate the collisions they normally stop
	require.NoError(t, db.Exec("DROP INDEX idx_foreign_row").Error)
	require.NoError(t, db.Exec("DROP INDEX idx_stage_participant").Error)

	insert(t, s, schema.TableMergeEntries, store.Row{
		"foreign_storage_id": "dev-a", "foreign_id": "r1", "ref_table": "venues", "local_id": "l3",
	})
	insert(t, s, schema.TableScores, store.Row{
		"event_stage_id": "st1", "participant_id": "p1", "completed": true,
	})
	insert(t, s, schema.TableScores, store.Row{
		"event_stage_id": "st1", "participant_id": "p1", "completed": false,
	})

	findings, err = checks.Duplicates(ctx, s)
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0], "dev-a/r1")
	assert.Contains(t, findings[1], "st1/p1")
}
