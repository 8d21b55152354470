package roster_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"scorebook/core/database"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/store/mocks"
	"scorebook/core/upsert"
	"scorebook/feature/roster"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	s := store.NewGorm(db)

	app := fiber.New()
	feature := roster.NewFeature(s, upsert.New(s, zap.NewNop()), zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func TestParticipantAndTeamEndpoints(t *testing.T) {
	app := newApp(t)

	body, _ := json.Marshal(roster.ParticipantInput{Name: "alice"})
	req := httptest.NewRequest("POST", "/participants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var alice schema.Participant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&alice))
	require.NotEmpty(t, alice.ID)

	body, _ = json.Marshal(roster.TeamInput{Name: "ringers", MemberIDs: []string{alice.ID}})
	req = httptest.NewRequest("PUT", "/teams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var team roster.TeamResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&team))
	assert.Equal(t, 1, team.Members.Inserted)

	req = httptest.NewRequest("GET", "/teams/"+team.Team.ID+"/tree", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var node roster.TeamNode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&node))
	require.Len(t, node.Members, 1)
	assert.Equal(t, alice.ID, node.Members[0].ID)

	req = httptest.NewRequest("GET", "/participants?team=true", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var teams []schema.Participant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&teams))
	require.Len(t, teams, 1)
	assert.Equal(t, team.Team.ID, teams[0].ID)

	req = httptest.NewRequest("GET", "/teams/missing/tree", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListParticipantsStoreFailure(t *testing.T) {
	st := new(mocks.Store)
	st.On("Select", mock.Anything, schema.TableParticipants, mock.Anything).
		Return(nil, errors.New("database is locked"))

	app := fiber.New()
	feature := roster.NewFeature(st, upsert.New(st, zap.NewNop()), zap.NewNop())
	require.NoError(t, feature.Load(app))

	req := httptest.NewRequest("GET", "/participants", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	st.AssertExpectations(t)
}
