package catalog_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"scorebook/core/database"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/feature/catalog"
	"scorebook/feature/golf"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	s := store.NewGorm(db)
	engine := upsert.New(s, zap.NewNop())
	registry := scoring.NewRegistry(s, engine, zap.NewNop())
	require.NoError(t, registry.Register(golf.New()))

	app := fiber.New()
	feature := catalog.NewFeature(s, engine, registry, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func TestSportEndpoints(t *testing.T) {
	app := newApp(t)

	body, _ := json.Marshal(catalog.SportInput{Name: "golf"})
	req := httptest.NewRequest("POST", "/sports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sport schema.Sport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sport))
	assert.Equal(t, "golf", sport.Name)
	assert.NotEmpty(t, sport.ID)

	// duplicate name conflicts
	req = httptest.NewRequest("POST", "/sports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	req = httptest.NewRequest("GET", "/sports", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sports []schema.Sport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sports))
	assert.Len(t, sports, 1)
}

func TestFormatEndpoints(t *testing.T) {
	app := newApp(t)

	body, _ := json.Marshal(catalog.SportInput{Name: "golf"})
	req := httptest.NewRequest("POST", "/sports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	var sport schema.Sport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sport))

	body, _ = json.Marshal(catalog.FormatInput{SportID: sport.ID, StageCount: 9})
	req = httptest.NewRequest("PUT", "/formats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result catalog.FormatResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 9, result.Stages.Inserted)

	req = httptest.NewRequest("GET", "/formats/"+result.Format.ID, nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var details catalog.FormatDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&details))
	assert.Len(t, details.Stages, 9)
	require.NotNil(t, details.Sport)
	assert.Equal(t, "golf", details.Sport.Name)

	req = httptest.NewRequest("GET", "/formats/missing", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
