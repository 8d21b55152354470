package store_test

import (
	"context"
	"testing"

	"scorebook/core/database"
	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Gorm {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.NewGorm(db)
}

func insertParticipant(t *testing.T, s *store.Gorm, name string, isTeam bool) string {
	t.Helper()
	id := uuid.NewString()
	err := s.Insert(context.Background(), schema.TableParticipants, store.Row{
		"id":      id,
		"name":    name,
		"is_team": isTeam,
	})
	require.NoError(t, err)
	return id
}

func TestGormInsertAndSelectOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Insert(ctx, schema.TableSports, store.Row{
		"id":   "sport-1",
		"name": "golf",
		"metadata": map[string]any{
			"holes": float64(18),
		},
	})
	require.NoError(t, err)

	row, err := s.SelectOne(ctx, schema.TableSports, store.ByID("sport-1"))
	require.NoError(t, err)

	assert.Equal(t, "sport-1", utils.ToString(row["id"]))
	assert.Equal(t, "golf", utils.ToString(row["name"]))
	assert.Greater(t, utils.ToInt(row["created_at"]), 0)
	assert.Greater(t, utils.ToInt(row["updated_at"]), 0)

	meta, ok := row["metadata"].(map[string]any)
	require.True(t, ok, "metadata should come back as a map, got %T", row["metadata"])
	assert.EqualValues(t, 18, utils.ToInt(meta["holes"]))
}

func TestGormSelectOneNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SelectOne(context.Background(), schema.TableSports, store.ByID("missing"))
	assert.True(t, errs.IsNotFound(err), "expected NotFoundError, got %v", err)
}

func TestGormUniqueViolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, schema.TableSports, store.Row{"id": "a", "name": "golf"}))
	err := s.Insert(ctx, schema.TableSports, store.Row{"id": "b", "name": "golf"})
	assert.True(t, errs.IsIntegrity(err), "expected IntegrityError, got %v", err)
}

func TestGormPredicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := insertParticipant(t, s, "alice", false)
	bob := insertParticipant(t, s, "bob", false)
	crew := insertParticipant(t, s, "the crew", true)

	t.Run("Eq Bool", func(t *testing.T) {
		rows, err := s.Select(ctx, schema.TableParticipants, store.NewQuery().Eq("is_team", true))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, crew, rows[0]["id"])
	})

	t.Run("Neq", func(t *testing.T) {
		rows, err := s.Select(ctx, schema.TableParticipants, store.NewQuery().Neq("name", "alice"))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("In", func(t *testing.T) {
		rows, err := s.Select(ctx, schema.TableParticipants,
			store.NewQuery().In("id", alice, bob))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("Like With Order And Limit", func(t *testing.T) {
		rows, err := s.Select(ctx, schema.TableParticipants,
			store.NewQuery().Like("name", "%e%").OrderBy("name", true).Limit(2))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "the crew", rows[0]["name"])
		assert.Equal(t, "bob", rows[1]["name"])
	})
}

func TestGormNullConditions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, schema.TableEventFormatStages, store.Row{
		"id": "root", "event_format_id": "fmt-1", "number": 1,
	}))
	require.NoError(t, s.Insert(ctx, schema.TableEventFormatStages, store.Row{
		"id": "child", "event_format_id": "fmt-1", "parent_id": "root", "number": 1,
	}))

	roots, err := s.Select(ctx, schema.TableEventFormatStages, store.NewQuery().Eq("parent_id", nil))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0]["id"])

	children, err := s.Select(ctx, schema.TableEventFormatStages, store.NewQuery().Neq("parent_id", nil))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0]["id"])
}

func TestGormUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := insertParticipant(t, s, "alice", false)
	before, err := s.SelectOne(ctx, schema.TableParticipants, store.ByID(id))
	require.NoError(t, err)

	err = s.Update(ctx, schema.TableParticipants, id, store.Row{"name": "alicia", "updated_at": utils.ToInt(before["updated_at"]) + 5})
	require.NoError(t, err)

	after, err := s.SelectOne(ctx, schema.TableParticipants, store.ByID(id))
	require.NoError(t, err)
	assert.Equal(t, "alicia", after["name"])
	assert.Greater(t, utils.ToInt(after["updated_at"]), utils.ToInt(before["updated_at"]))

	t.Run("Missing Row", func(t *testing.T) {
		err := s.Update(ctx, schema.TableParticipants, "nope", store.Row{"name": "x"})
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("Never Touches Primary Key", func(t *testing.T) {
		err := s.Update(ctx, schema.TableParticipants, id, store.Row{"id": "hijack", "name": "alice"})
		require.NoError(t, err)

		_, err = s.SelectOne(ctx, schema.TableParticipants, store.ByID(id))
		assert.NoError(t, err)
	})
}

func TestGormDeleteAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertParticipant(t, s, "alice", false)
	insertParticipant(t, s, "bob", false)
	insertParticipant(t, s, "crew", true)

	n, err := s.Count(ctx, schema.TableParticipants, store.NewQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	deleted, err := s.Delete(ctx, schema.TableParticipants, store.NewQuery().Eq("is_team", false))
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	n, err = s.Count(ctx, schema.TableParticipants, store.NewQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	t.Run("Refuses Unconditional Delete", func(t *testing.T) {
		_, err := s.Delete(ctx, schema.TableParticipants, store.NewQuery())
		assert.Error(t, err)
	})
}
