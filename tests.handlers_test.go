package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// This file contains unit tests for the core api handlers.

// TestHealthHandler ensures the health endpoint answers with the exact expected body.
func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	api.Health(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, string(data))
}

// TestIndexHandler ensures the root endpoint redirects to the health endpoint.
func TestIndexHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	api.Index(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/health", res.Header.Get("Location"))
}

// TestNotFoundHandler ensures unknown routes get the json not found body.
func TestNotFoundHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)
	api.NotFound().ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"success":false, "error":"route does not exist"}`, string(data))
}

// TestMaintenanceHandler ensures ops users can enable, disable and view the maintenance mode.
func TestMaintenanceHandler(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()}, NewMockClocker(), NewMockUIDHandler("test"), nil)

	t.Run("enable with message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance?status=enable&msg=db+upgrade", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)

		m := make(map[string]interface{})
		err := json.NewDecoder(res.Body).Decode(&m)
		assert.NoError(t, err)
		assert.Equal(t, "Maintenance mode enabled successfully.", m["message"])
		assert.Equal(t, "db upgrade", m["maintenance.message"])
		assert.True(t, api.mode.enabled.Load())
	})

	t.Run("status while enabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()

		m := make(map[string]interface{})
		err := json.NewDecoder(res.Body).Decode(&m)
		assert.NoError(t, err)
		assert.Equal(t, true, m["enabled"])
		assert.Equal(t, "db upgrade", m["message"])
	})

	t.Run("disable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance?status=disable", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()

		m := make(map[string]interface{})
		err := json.NewDecoder(res.Body).Decode(&m)
		assert.NoError(t, err)
		assert.Equal(t, "Maintenance mode disabled successfully.", m["message"])
		assert.False(t, api.mode.enabled.Load())
		assert.Empty(t, api.mode.message)
	})
}

// TestGetStatisticsHandler ensures the stats endpoint reports version, uptime and statuses.
func TestGetStatisticsHandler(t *testing.T) {
	stats := &Statistics{
		version:  "v1.0.0",
		runtime:  "go1.21",
		platform: "linux/amd64",
		called:   3,
		started:  NewMockClocker().Now(),
	}
	api := NewAPIHandler(zap.NewNop(), &Config{}, stats, NewMockClocker(), NewMockUIDHandler("test"), nil)
	req := httptest.NewRequest(http.MethodGet, "/ops/stats", nil)
	w := httptest.NewRecorder()
	api.GetStatistics(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	m := make(map[string]interface{})
	err := json.NewDecoder(res.Body).Decode(&m)
	assert.NoError(t, err)
	assert.Equal(t, "v1.0.0", m["app.version"])
	assert.Equal(t, "go1.21", m["go.version"])
	assert.Equal(t, float64(2), m["called"])
	assert.Equal(t, "0 mins", m["uptime"])
}
