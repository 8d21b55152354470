package store_test

import (
	"testing"

	"scorebook/core/schema"
	"scorebook/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strptr(s string) *string { return &s }

func TestRowOf(t *testing.T) {
	sport := schema.Sport{
		ID:       "sport-1",
		Name:     "golf",
		Notes:    strptr("weekend league"),
		Metadata: datatypes.JSONMap{"holes": 18},
	}

	row := store.RowOf(sport)

	assert.Equal(t, "sport-1", row["id"])
	assert.Equal(t, "golf", row["name"])
	assert.Equal(t, "weekend league", row["notes"])
	assert.Equal(t, map[string]any{"holes": 18}, row["metadata"])

	// nil pointers and zero auto-timestamps stay out of the row
	assert.NotContains(t, row, "location")
	assert.NotContains(t, row, "created_at")
	assert.NotContains(t, row, "updated_at")
}

func TestRowOfSkipsEmptyPrimaryKey(t *testing.T) {
	row := store.RowOf(schema.Participant{IsTeam: true})
	assert.NotContains(t, row, "id")
	assert.Equal(t, true, row["is_team"])
}

func TestScanRow(t *testing.T) {
	// value shapes as they come back from different drivers
	row := store.Row{
		"id":         []byte("stage-1"),
		"event_id":   "event-1",
		"number":     int64(3),
		"parent_id":  nil,
		"name":       "front nine",
		"metadata":   `{"par": 4}`,
		"created_at": float64(1700000000000),
	}

	var stage schema.EventStage
	require.NoError(t, store.ScanRow(row, &stage))

	assert.Equal(t, "stage-1", stage.ID)
	assert.Equal(t, "event-1", stage.EventID)
	assert.Equal(t, 3, stage.Number)
	assert.Nil(t, stage.ParentID)
	require.NotNil(t, stage.Name)
	assert.Equal(t, "front nine", *stage.Name)
	assert.EqualValues(t, 1700000000000, stage.CreatedAt)
	assert.EqualValues(t, 4, stage.Metadata["par"].(float64))
}

func TestScanRowRejectsNonPointer(t *testing.T) {
	var stage schema.EventStage
	assert.Error(t, store.ScanRow(store.Row{}, stage))
}

func TestRowRoundTrip(t *testing.T) {
	par := 4.0
	score := schema.ParticipantEventStageScore{
		ID:            "score-1",
		EventStageID:  "stage-1",
		ParticipantID: "part-1",
		RawValue:      &par,
		Completed:     true,
		Metadata:      datatypes.JSONMap{"attested": true},
	}

	var back schema.ParticipantEventStageScore
	require.NoError(t, store.ScanRow(store.RowOf(score), &back))

	assert.Equal(t, score.ID, back.ID)
	assert.Equal(t, score.EventStageID, back.EventStageID)
	require.NotNil(t, back.RawValue)
	assert.Equal(t, 4.0, *back.RawValue)
	assert.Nil(t, back.Points)
	assert.True(t, back.Completed)
	assert.Equal(t, true, back.Metadata["attested"])
}

func TestColumns(t *testing.T) {
	cols := store.Columns(&schema.MergeEntry{})
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "foreign_storage_id")
	assert.Contains(t, cols, "foreign_id")
	assert.Contains(t, cols, "local_id")
	assert.NotContains(t, cols, "updated_at")
}
