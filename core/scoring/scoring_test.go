package scoring_test

import (
	"math/rand"
	"testing"

	"scorebook/core/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(stage, participant string, raw float64) scoring.StageEntry {
	return scoring.StageEntry{
		Stage:         scoring.StageContext{StageID: stage},
		ParticipantID: participant,
		RawValue:      raw,
		Points:        raw,
		Completed:     true,
	}
}

func TestAccumulateIsOrderIndependent(t *testing.T) {
	entries := []scoring.StageEntry{
		entry("s1", "alice", 4),
		entry("s2", "alice", 5),
		entry("s3", "alice", 3),
		entry("s1", "bob", 6),
		entry("s2", "bob", 4),
	}

	want := scoring.Accumulate(entries)

	for i := 0; i < 10; i++ {
		shuffled := make([]scoring.StageEntry, len(entries))
		copy(shuffled, entries)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, scoring.Accumulate(shuffled))
	}

	require.Len(t, want, 2)
	assert.Equal(t, "alice", want[0].ParticipantID)
	assert.Equal(t, float64(12), want[0].TotalPoints)
	assert.Equal(t, 3, want[0].StagesCompleted)
	assert.Equal(t, float64(10), want[1].TotalPoints)
}

func TestAccumulateSkipsIncomplete(t *testing.T) {
	e := entry("s1", "alice", 4)
	e.Completed = false

	results := scoring.Accumulate([]scoring.StageEntry{e, entry("s2", "alice", 5)})
	require.Len(t, results, 1)
	assert.Equal(t, float64(5), results[0].TotalPoints)
	assert.Equal(t, 1, results[0].StagesCompleted)
}

func TestRank(t *testing.T) {
	results := []scoring.ParticipantResult{
		{ParticipantID: "alice", TotalPoints: 72},
		{ParticipantID: "bob", TotalPoints: 68},
		{ParticipantID: "cara", TotalPoints: 72},
		{ParticipantID: "dan", TotalPoints: 80},
	}

	t.Run("Lower Is Better", func(t *testing.T) {
		ranked := scoring.Rank(results, false)
		require.Len(t, ranked, 4)
		assert.Equal(t, "bob", ranked[0].ParticipantID)
		assert.Equal(t, 1, ranked[0].Rank)
		// alice and cara tie on 72 and share rank 2; dan skips to 4
		assert.Equal(t, 2, ranked[1].Rank)
		assert.Equal(t, 2, ranked[2].Rank)
		assert.Equal(t, "dan", ranked[3].ParticipantID)
		assert.Equal(t, 4, ranked[3].Rank)
	})

	t.Run("Higher Is Better", func(t *testing.T) {
		ranked := scoring.Rank(results, true)
		assert.Equal(t, "dan", ranked[0].ParticipantID)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, "bob", ranked[3].ParticipantID)
		assert.Equal(t, 4, ranked[3].Rank)
	})

	t.Run("Input Untouched", func(t *testing.T) {
		scoring.Rank(results, true)
		assert.Zero(t, results[0].Rank)
	})
}

func TestStats(t *testing.T) {
	incomplete := entry("s3", "bob", 0)
	incomplete.Completed = false

	stats := scoring.Stats([]scoring.StageEntry{
		entry("s1", "alice", 4),
		entry("s2", "alice", 5),
		entry("s1", "bob", 6),
		incomplete,
	})

	assert.Equal(t, 2, stats.Participants)
	assert.Equal(t, 2, stats.StagesScored)
	assert.Equal(t, 3, stats.ScoresEntered)
}
