package scoring_test

import (
	"context"
	"fmt"
	"testing"

	"scorebook/core/database"
	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/upsert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubMethod is a minimal identity-points method for registry tests.
type stubMethod struct {
	name   string
	higher bool
}

func (m stubMethod) Name() string             { return m.name }
func (m stubMethod) HigherPointsBetter() bool { return m.higher }
func (m stubMethod) ValueToPoints(raw float64) float64 {
	return raw
}
func (m stubMethod) ValueToScoreType(raw float64, _ scoring.StageContext) string {
	return fmt.Sprintf("%v", raw)
}
func (m stubMethod) ScoreEvent(entries []scoring.StageEntry) scoring.EventScore {
	return scoring.EventScore{
		Participants: scoring.Rank(scoring.Accumulate(entries), m.higher),
		Stats:        scoring.Stats(entries),
	}
}

type stubPlugin struct {
	name    string
	methods []scoring.Method
}

func (p stubPlugin) Name() string              { return p.name }
func (p stubPlugin) Methods() []scoring.Method { return p.methods }
func (p stubPlugin) DefaultStages(count int) []scoring.StagePlan {
	plans := make([]scoring.StagePlan, 0, count)
	for i := 1; i <= count; i++ {
		plans = append(plans, scoring.StagePlan{Number: i})
	}
	return plans
}
func (p stubPlugin) ValidateMetadata(string, map[string]any) error        { return nil }
func (p stubPlugin) ValidateRawValue(float64, scoring.StageContext) error { return nil }

func newRegistry(t *testing.T) (*scoring.Registry, store.Store) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	s := store.NewGorm(db)
	return scoring.NewRegistry(s, upsert.New(s, zap.NewNop()), zap.NewNop()), s
}

func TestRegistryRegister(t *testing.T) {
	r, _ := newRegistry(t)

	require.NoError(t, r.Register(stubPlugin{name: "golf"}))
	err := r.Register(stubPlugin{name: "golf"})
	assert.True(t, errs.IsIntegrity(err), "duplicate sport name must conflict")

	_, ok := r.Plugin("golf")
	assert.True(t, ok)
	assert.Len(t, r.Plugins(), 1)
}

func TestEnsureScoreFormatsIdempotent(t *testing.T) {
	r, s := newRegistry(t)
	ctx := context.Background()

	plugin := stubPlugin{
		name:    "golf",
		methods: []scoring.Method{stubMethod{name: "stroke"}, stubMethod{name: "stableford", higher: true}},
	}
	require.NoError(t, r.Register(plugin))

	sportID, err := r.EnsureScoreFormats(ctx, plugin)
	require.NoError(t, err)
	assert.NotEmpty(t, sportID)

	again, err := r.EnsureScoreFormats(ctx, plugin)
	require.NoError(t, err)
	assert.Equal(t, sportID, again, "re-registration keeps the sport id")

	sports, err := s.Count(ctx, schema.TableSports, store.NewQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sports)

	formats, err := s.Count(ctx, schema.TableScoreFormats, store.NewQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 2, formats, "one row per method, no duplicates")
}

func TestEnsureScoreFormatsPromotesGeneric(t *testing.T) {
	r, s := newRegistry(t)
	ctx := context.Background()

	// a generic score format created before the sport plugin existed
	require.NoError(t, s.Insert(ctx, schema.TableScoreFormats, store.Row{
		"id": "generic-stroke", "name": "stroke",
	}))

	plugin := stubPlugin{name: "golf", methods: []scoring.Method{stubMethod{name: "stroke"}}}
	require.NoError(t, r.Register(plugin))

	sportID, err := r.EnsureScoreFormats(ctx, plugin)
	require.NoError(t, err)

	row, err := s.SelectOne(ctx, schema.TableScoreFormats, store.ByID("generic-stroke"))
	require.NoError(t, err)
	assert.Equal(t, sportID, row["sport_id"], "generic format is promoted, not duplicated")

	n, err := s.Count(ctx, schema.TableScoreFormats, store.NewQuery().Eq("name", "stroke"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMethodForScoreFormat(t *testing.T) {
	r, s := newRegistry(t)
	ctx := context.Background()

	plugin := stubPlugin{name: "golf", methods: []scoring.Method{stubMethod{name: "stroke"}}}
	require.NoError(t, r.Register(plugin))

	_, err := r.EnsureScoreFormats(ctx, plugin)
	require.NoError(t, err)

	row, err := s.SelectOne(ctx, schema.TableScoreFormats, store.NewQuery().Eq("name", "stroke"))
	require.NoError(t, err)

	method, err := r.MethodForScoreFormat(ctx, row["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "stroke", method.Name())

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := r.MethodForScoreFormat(ctx, "missing")
		assert.True(t, errs.IsNotFound(err))
	})
}
