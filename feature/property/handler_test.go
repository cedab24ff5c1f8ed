package property

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"renting-scraper/feature/property/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLister struct {
	active   []models.PropertyEntity
	delisted []models.PropertyEntity
	byKey    map[models.PropertyKey]*models.PropertyEntity
	err      error
}

func (s *stubLister) ListActive(_ context.Context) ([]models.PropertyEntity, error) {
	return s.active, s.err
}

func (s *stubLister) ListDelisted(_ context.Context) ([]models.PropertyEntity, error) {
	return s.delisted, s.err
}

func (s *stubLister) FindByKey(_ context.Context, source models.Source, externalID string) (*models.PropertyEntity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byKey[models.PropertyKey{Source: source, ExternalID: externalID}], nil
}

func setupApp(store lister) *fiber.App {
	app := fiber.New()
	handler := NewHandler(NewService(store, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app
}

func TestHandler_ListActive(t *testing.T) {
	store := &stubLister{
		active: []models.PropertyEntity{
			{ID: "id-1", Source: models.SourceImovirtual, ExternalID: "1", Description: "T2", Price: 900},
		},
	}
	app := setupApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/properties", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var listings []models.PropertyEntity
	require.NoError(t, json.Unmarshal(body, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "id-1", listings[0].ID)
}

func TestHandler_ListDelisted(t *testing.T) {
	store := &stubLister{
		delisted: []models.PropertyEntity{
			{ID: "id-gone", Source: models.SourceIdealista, ExternalID: "9"},
		},
	}
	app := setupApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/properties/delisted", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var listings []models.PropertyEntity
	require.NoError(t, json.Unmarshal(body, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "id-gone", listings[0].ID)
}

func TestHandler_GetByKey(t *testing.T) {
	entity := &models.PropertyEntity{ID: "id-1", Source: models.SourceImovirtual, ExternalID: "42"}
	store := &stubLister{
		byKey: map[models.PropertyKey]*models.PropertyEntity{
			entity.Key(): entity,
		},
	}
	app := setupApp(store)

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/properties/imovirtual/42", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var got models.PropertyEntity
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "id-1", got.ID)
	})

	t.Run("Unknown source", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/properties/zillow/42", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Not found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/properties/imovirtual/404", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandler_StoreFailure(t *testing.T) {
	app := setupApp(&stubLister{err: assert.AnError})

	resp, err := app.Test(httptest.NewRequest("GET", "/properties", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
