package catalog_test

import (
	"context"
	"testing"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/utils"
	"scorebook/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterVenueFormatSnapshotsTree(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	sport := seedSport(t, svc, "golf")

	format, err := svc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		SportID:         sport.ID,
		Name:            "Split Round",
		DurationMinutes: utils.Ptr(240),
		Stages: []catalog.StageInput{
			{Number: 1, Name: "Front", SubStages: []catalog.StageInput{
				{Number: 1, Metadata: map[string]any{"par": 4}},
				{Number: 2, Metadata: map[string]any{"par": 5}},
			}},
			{Number: 2, Name: "Back"},
		},
	})
	require.NoError(t, err)

	venue, err := svc.CreateVenue(ctx, catalog.VenueInput{Name: "Old Links"})
	require.NoError(t, err)

	details, err := svc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{
		DurationMinutes: utils.Ptr(180),
	})
	require.NoError(t, err)

	// the mirror matches the format tree: same shape, same numbers
	require.Len(t, details.Stages, 2)
	require.Len(t, details.Stages[0].SubStages, 2)
	assert.Empty(t, details.Stages[1].SubStages)
	assert.Equal(t, 1, details.Stages[0].Number)
	assert.Equal(t, 2, details.Stages[0].SubStages[1].Number)

	// format metadata and names show through the merged view
	assert.EqualValues(t, 5, details.Stages[0].SubStages[1].Merged["par"])
	require.NotNil(t, details.Stages[0].Format)
	require.NotNil(t, details.Stages[0].Format.Name)
	assert.Equal(t, "Front", *details.Stages[0].Format.Name)

	// every mirror row remembers its source stage
	for _, root := range details.Stages {
		assert.NotEmpty(t, root.EventFormatStageID)
		for _, sub := range root.SubStages {
			assert.NotEmpty(t, sub.EventFormatStageID)
			require.NotNil(t, sub.ParentID)
			assert.Equal(t, root.ID, *sub.ParentID)
		}
	}

	// overrides collapse over the format's base values
	require.NotNil(t, details.Effective.DurationMinutes)
	assert.Equal(t, 180, *details.Effective.DurationMinutes)
}

func TestRegisterVenueFormatIsIdempotent(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	sport := seedSport(t, svc, "golf")

	format, err := svc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		SportID:    sport.ID,
		StageCount: 3,
	})
	require.NoError(t, err)
	venue, err := svc.CreateVenue(ctx, catalog.VenueInput{Name: "Old Links"})
	require.NoError(t, err)

	first, err := svc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	require.NoError(t, err)
	second, err := svc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the (venue, format) pair identifies the registration")

	n, err := s.Count(ctx, schema.TableVenueEventFormatStages,
		store.NewQuery().Eq("venue_event_format_id", first.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n, "no duplicate mirrors")
}

func TestReRegisterFollowsFormatTreeEdits(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	sport := seedSport(t, svc, "golf")

	format, err := svc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		SportID: sport.ID,
		Stages: []catalog.StageInput{
			{Number: 1, Metadata: map[string]any{"par": 4}},
			{Number: 2, Metadata: map[string]any{"par": 4}},
		},
	})
	require.NoError(t, err)
	venue, err := svc.CreateVenue(ctx, catalog.VenueInput{Name: "Old Links"})
	require.NoError(t, err)

	details, err := svc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	require.NoError(t, err)
	require.Len(t, details.Stages, 2)

	// the venue tweaks one mirrored hole with its own keys
	venueStage := details.Stages[0]
	require.NoError(t, s.Update(ctx, schema.TableVenueEventFormatStages, venueStage.ID,
		store.Row{"metadata": map[string]any{"tee": "red"}}))

	// the format grows a hole, drops another and re-pars the first
	_, err = svc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		ID:      format.Format.ID,
		SportID: sport.ID,
		Stages: []catalog.StageInput{
			{Number: 1, Metadata: map[string]any{"par": 5}},
			{Number: 3, Metadata: map[string]any{"par": 3}},
		},
	})
	require.NoError(t, err)

	refreshed, err := svc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	require.NoError(t, err)
	require.Len(t, refreshed.Stages, 2)
	assert.Equal(t, 1, refreshed.Stages[0].Number)
	assert.Equal(t, 3, refreshed.Stages[1].Number, "pruned mirror replaced by the new stage")
	assert.Equal(t, venueStage.ID, refreshed.Stages[0].ID, "matched mirror keeps its id")

	// format values flow through the merge, venue-side keys survive
	assert.EqualValues(t, 5, refreshed.Stages[0].Merged["par"])
	assert.Equal(t, "red", refreshed.Stages[0].Merged["tee"])
	assert.EqualValues(t, 3, refreshed.Stages[1].Merged["par"])
}

func TestRegisterVenueFormatUnknownRefs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	sport := seedSport(t, svc, "golf")

	format, err := svc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{SportID: sport.ID})
	require.NoError(t, err)
	venue, err := svc.CreateVenue(ctx, catalog.VenueInput{Name: "Old Links"})
	require.NoError(t, err)

	_, err = svc.RegisterVenueEventFormat(ctx, "missing", format.Format.ID, catalog.RegistrationInput{})
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.RegisterVenueEventFormat(ctx, venue.ID, "missing", catalog.RegistrationInput{})
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.GetVenueEventFormatDetails(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}
