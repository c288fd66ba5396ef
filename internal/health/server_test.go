package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubJobs struct {
	running bool
}

func (j stubJobs) IsRunning() bool { return j.running }

func TestHandleHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "edge-picks", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "edge-picks", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandleReadyAllChecksPass(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "edge-picks",
		DB:          stubPinger{},
		Jobs:        stubJobs{running: true},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["scheduler"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "edge-picks",
		DB:          stubPinger{err: errors.New("connection refused")},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestHandleReadySchedulerStopped(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "edge-picks",
		Jobs:        stubJobs{running: false},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stopped", resp.Checks["scheduler"])
}

func TestHandleReadyNotMarkedReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "edge-picks"})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDefaultPort(t *testing.T) {
	s := NewServer(Config{ServiceName: "edge-picks"})
	assert.Equal(t, "8080", s.port)
}
