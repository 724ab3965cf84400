package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apprendrelanguage02-max/Matrix/internal/app"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHealthDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	// Liveness never touches a dependency, an empty container must do /
	// La vivacité ne touche aucune dépendance
	h := NewHandler(&app.Container{})

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Uptime)
	assert.Empty(t, resp.Checks)
}

func TestReadinessCheck(t *testing.T) {
	t.Run("database only", func(t *testing.T) {
		h := NewHandler(&app.Container{DB: openHealthDB(t)})

		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, resp.Checks,
			"unwired dependencies never appear in the checks")
	})

	t.Run("broker wired and healthy", func(t *testing.T) {
		h := NewHandler(&app.Container{DB: openHealthDB(t), Publisher: mocks.NewMockPublisher()})

		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "ok", resp.Checks["queue"])
	})

	t.Run("broker wired and down", func(t *testing.T) {
		publisher := mocks.NewMockPublisher()
		publisher.PingError = errors.New("connection closed")
		h := NewHandler(&app.Container{DB: openHealthDB(t), Publisher: publisher})

		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "error", resp.Checks["queue"])
		assert.Equal(t, "ok", resp.Checks["database"], "a dead broker must not mask the database state")
	})

	t.Run("no database", func(t *testing.T) {
		h := NewHandler(&app.Container{})

		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeHealth(t, rec)
		assert.Equal(t, "error", resp.Checks["database"])
	})
}
