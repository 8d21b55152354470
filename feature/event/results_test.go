package event_test

import (
	"context"
	"testing"

	"scorebook/core/errs"
	"scorebook/core/scoring"
	"scorebook/core/utils"
	"scorebook/feature/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEventRanksStrokePlay(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	reg := seedCourse(t, w, 9, nil)
	players := seedPlayers(t, w, "Ann", "Ben")

	created, err := w.events.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
		ParticipantIDs:     players,
	})
	require.NoError(t, err)

	// a full card: Ann birdies the ninth, Ben drops a shot on the eighth
	stages := make([]event.StageInput, 0, 9)
	for n := 1; n <= 9; n++ {
		annRaw, benRaw := 4.0, 4.0
		if n == 8 {
			benRaw = 5
		}
		if n == 9 {
			annRaw = 3
		}
		stages = append(stages, event.StageInput{
			Number: n,
			Scores: pairScores(players[0], players[1], annRaw, benRaw),
		})
	}
	_, err = w.events.UpsertEventWithDetails(ctx, created.ID, event.EventInput{Stages: stages})
	require.NoError(t, err)

	results, err := w.events.ScoreEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "stroke", results.Method)
	assert.False(t, results.HigherPointsBetter)
	require.Len(t, results.Participants, 2)

	ann := results.Participants[0]
	assert.Equal(t, players[0], ann.ParticipantID)
	assert.EqualValues(t, 35, ann.TotalPoints)
	assert.EqualValues(t, 35, ann.TotalRaw)
	assert.Equal(t, 9, ann.StagesCompleted)
	assert.Equal(t, 1, ann.Rank)

	ben := results.Participants[1]
	assert.Equal(t, players[1], ben.ParticipantID)
	assert.EqualValues(t, 37, ben.TotalPoints)
	assert.Equal(t, 2, ben.Rank)

	assert.Equal(t, scoring.EventStats{Participants: 2, StagesScored: 9, ScoresEntered: 18}, results.Stats)
}

func TestScoreEventSkipsIncompleteEntries(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	reg := seedCourse(t, w, 3, nil)
	players := seedPlayers(t, w, "Ann", "Ben")

	created, err := w.events.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
		ParticipantIDs:     players,
	})
	require.NoError(t, err)

	_, err = w.events.UpsertEventWithDetails(ctx, created.ID, event.EventInput{
		Stages: []event.StageInput{
			{Number: 1, Scores: pairScores(players[0], players[1], 4, 4)},
			{Number: 2, Scores: pairScores(players[0], players[1], 4, 4)},
			{Number: 3, Scores: []event.ScoreInput{
				{ParticipantID: players[0], RawValue: utils.Ptr(4.0), Completed: utils.Ptr(true)},
				{ParticipantID: players[1], RawValue: utils.Ptr(4.0), Completed: utils.Ptr(false)},
			}},
		},
	})
	require.NoError(t, err)

	results, err := w.events.ScoreEvent(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, results.Participants, 2)

	// Ben's pending third hole keeps him at eight strokes, which leads a
	// lower-is-better ranking until the hole is completed
	ben := results.Participants[0]
	assert.Equal(t, players[1], ben.ParticipantID)
	assert.EqualValues(t, 8, ben.TotalPoints)
	assert.Equal(t, 2, ben.StagesCompleted)
	assert.Equal(t, 1, ben.Rank)

	ann := results.Participants[1]
	assert.EqualValues(t, 12, ann.TotalPoints)
	assert.Equal(t, 3, ann.StagesCompleted)
	assert.Equal(t, 2, ann.Rank)

	assert.Equal(t, scoring.EventStats{Participants: 2, StagesScored: 3, ScoresEntered: 5}, results.Stats)
}

func TestScoreEventCountsLeafStagesOnly(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	reg := seedCourse(t, w, 0, nestedCourse())
	players := seedPlayers(t, w, "Ann")

	created, err := w.events.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
		ParticipantIDs:     players,
	})
	require.NoError(t, err)

	// a stray value on a grouping stage must not leak into the totals
	_, err = w.events.UpsertEventWithDetails(ctx, created.ID, event.EventInput{
		Stages: []event.StageInput{
			{Number: 1, Scores: []event.ScoreInput{
				{ParticipantID: players[0], RawValue: utils.Ptr(99.0), Completed: utils.Ptr(true)},
			}, SubStages: []event.StageInput{
				{Number: 1, Scores: []event.ScoreInput{
					{ParticipantID: players[0], RawValue: utils.Ptr(4.0), Completed: utils.Ptr(true)},
				}},
				{Number: 2, Scores: []event.ScoreInput{
					{ParticipantID: players[0], RawValue: utils.Ptr(5.0), Completed: utils.Ptr(true)},
				}},
			}},
			{Number: 2, SubStages: []event.StageInput{
				{Number: 1}, {Number: 2},
			}},
		},
	})
	require.NoError(t, err)

	results, err := w.events.ScoreEvent(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, results.Participants, 1)
	assert.EqualValues(t, 9, results.Participants[0].TotalRaw)
	assert.Equal(t, 2, results.Participants[0].StagesCompleted)
	assert.Equal(t, scoring.EventStats{Participants: 1, StagesScored: 2, ScoresEntered: 2}, results.Stats)
}

func TestScoreEventEmptyAndMissing(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	reg := seedCourse(t, w, 3, nil)

	created, err := w.events.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
	})
	require.NoError(t, err)

	results, err := w.events.ScoreEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, results.Participants)
	assert.Equal(t, scoring.EventStats{}, results.Stats)

	_, err = w.events.ScoreEvent(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}
