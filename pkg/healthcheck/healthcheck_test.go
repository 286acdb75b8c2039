package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveNeverTouchesDependencies(t *testing.T) {
	touched := false
	h := NewHandler("meal-planner", "1.0.0", zap.NewNop(), Check{
		Name: "database",
		Probe: func(ctx context.Context) error {
			touched = true
			return errors.New("down")
		},
	})

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, touched)
}

func TestReadyReportsHealthyChecks(t *testing.T) {
	h := NewHandler("meal-planner", "1.0.0", zap.NewNop(),
		Check{Name: "database", Probe: func(ctx context.Context) error { return nil }},
		Check{Name: "cache", Probe: func(ctx context.Context) error { return nil }},
	)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Checks["database"])
	assert.Equal(t, "ok", body.Checks["cache"])
}

func TestReadyDegradesOnFailedProbe(t *testing.T) {
	h := NewHandler("meal-planner", "1.0.0", zap.NewNop(),
		Check{Name: "database", Probe: func(ctx context.Context) error { return nil }},
		Check{Name: "ai", Probe: func(ctx context.Context) error { return errors.New("connection refused") }},
	)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["database"])
	assert.Equal(t, "connection refused", body.Checks["ai"])
}
