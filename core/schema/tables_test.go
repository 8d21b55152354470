package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesDependencyOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, table := range Tables {
		for _, ref := range table.RefColumns {
			if ref == "parent_id" || ref == "ref_id" || ref == "local_id" {
				continue // self refs and soft refs cannot precede their table
			}
			target := refTarget(ref)
			assert.Truef(t, seen[target], "%s references %s before it is registered", table.Name, target)
		}
		seen[table.Name] = true
	}
}

// refTarget maps a foreign-key column to the table it points at.
func refTarget(column string) string {
	switch column {
	case "sport_id":
		return TableSports
	case "score_format_id":
		return TableScoreFormats
	case "event_format_id":
		return TableEventFormats
	case "event_format_stage_id":
		return TableEventFormatStages
	case "venue_id":
		return TableVenues
	case "venue_event_format_id":
		return TableVenueEventFormats
	case "venue_event_format_stage_id":
		return TableVenueEventFormatStages
	case "team_id", "participant_id":
		return TableParticipants
	case "event_id":
		return TableEvents
	case "event_stage_id":
		return TableEventStages
	case "foreign_storage_id":
		return TableStorages
	}
	return column
}

func TestTableByName(t *testing.T) {
	table, ok := TableByName(TableScores)
	assert.True(t, ok)
	assert.Equal(t, TableScores, table.Name)
	assert.Contains(t, table.RefColumns, "event_stage_id")

	_, ok = TableByName("no_such_table")
	assert.False(t, ok)
}

func TestSyncedTablesExcludeLocalOnly(t *testing.T) {
	names := SyncedTables()
	assert.NotContains(t, names, TableStorages)
	assert.NotContains(t, names, TableMergeEntries)
	assert.Contains(t, names, TableSports)
	assert.Contains(t, names, TablePhotos)

	// dependency order must hold within the synced subset too
	idx := map[string]int{}
	for i, n := range names {
		idx[n] = i
	}
	assert.Less(t, idx[TableSports], idx[TableEventFormats])
	assert.Less(t, idx[TableEvents], idx[TableEventStages])
	assert.Less(t, idx[TableEventStages], idx[TableScores])
}

func TestModelsMatchRegistry(t *testing.T) {
	models := Models()
	assert.Len(t, models, len(Tables))
	for i, m := range models {
		named, ok := m.(interface{ TableName() string })
		assert.Truef(t, ok, "model %d has no TableName", i)
		assert.Equal(t, Tables[i].Name, named.TableName())
	}
}
