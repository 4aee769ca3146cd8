package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planets-api/internal/auth"
	"planets-api/internal/middleware"
	"planets-api/internal/planet"
	"planets-api/internal/shared/config"
	"planets-api/internal/upload"
)

func newTestHandler(t *testing.T) (*PlanetHandler, *planet.Service) {
	t.Helper()

	gateway := planet.NewMemoryGateway()
	service := planet.NewService(gateway, slog.Default())

	uploads, err := upload.NewStore(config.UploadConfig{
		Dir:      t.TempDir(),
		MaxBytes: 1 << 20,
	}, slog.Default())
	require.NoError(t, err)

	return NewPlanetHandler(service, uploads), service
}

func asUser(req *http.Request, username string) *http.Request {
	ctx := middleware.WithPrincipal(req.Context(), auth.Principal{Username: username})
	return req.WithContext(ctx)
}

func seedPlanet(t *testing.T, service *planet.Service, name string) *planet.Planet {
	t.Helper()
	created, err := service.Create(context.Background(),
		planet.Input{Name: name, Diameter: 1000, Moons: 0},
		auth.Principal{Username: "seeder"})
	require.NoError(t, err)
	return created
}

func TestGetRejectsNonNumericID(t *testing.T) {
	handler, service := newTestHandler(t)
	seedPlanet(t, service, "Earth")

	for _, id := range []string{"abc", "1x", "-1", "1.5", ""} {
		req := httptest.NewRequest(http.MethodGet, "/planets/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "id %q", id)
		assert.NotContains(t, rec.Body.String(), "Cannot GET", "id %q must not hit the domain 404", id)
	}
}

func TestGetExistingPlanet(t *testing.T) {
	handler, service := newTestHandler(t)
	created := seedPlanet(t, service, "Earth")

	req := httptest.NewRequest(http.MethodGet, "/planets/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var fetched planet.Planet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Earth", fetched.Name)
}

func TestCreateWithoutPrincipalIsUnauthorized(t *testing.T) {
	handler, _ := newTestHandler(t)

	// The auth gate normally guarantees a principal; the handler still
	// refuses to write without one.
	req := httptest.NewRequest(http.MethodPost, "/planets",
		strings.NewReader(`{"name":"Earth","diameter":12742,"moons":1}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateValidPayload(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := asUser(httptest.NewRequest(http.MethodPost, "/planets",
		strings.NewReader(`{"name":"Earth","diameter":12742,"moons":1}`)), "alice")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created planet.Planet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "alice", created.CreatedBy)
	assert.Equal(t, "alice", created.UpdatedBy)
}

func TestReplaceValidationRunsBeforePersistence(t *testing.T) {
	handler, service := newTestHandler(t)
	seedPlanet(t, service, "Earth")

	req := asUser(httptest.NewRequest(http.MethodPut, "/planets/1",
		strings.NewReader(`{"diameter":0}`)), "bob")
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	handler.Replace(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The record is unchanged.
	current, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Earth", current.Name)
	assert.Equal(t, "seeder", current.CreatedBy)
}

func TestDeleteReturnsNoContent(t *testing.T) {
	handler, service := newTestHandler(t)
	seedPlanet(t, service, "Earth")

	req := asUser(httptest.NewRequest(http.MethodDelete, "/planets/1", nil), "alice")
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUploadPhotoWithoutMultipartBody(t *testing.T) {
	handler, service := newTestHandler(t)
	seedPlanet(t, service, "Earth")

	req := asUser(httptest.NewRequest(http.MethodPost, "/planets/1/photo",
		strings.NewReader("not a form")), "alice")
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	handler.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No photo file uploaded.")

	current, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, current.PhotoFilename)
}
