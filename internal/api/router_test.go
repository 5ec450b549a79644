package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsix/g6/internal/api/handlers"
	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/internal/scheduler"
	"github.com/gridsix/g6/internal/storage"
	"github.com/gridsix/g6/pkg/logger"
)

func newTestRouter(t *testing.T) (http.Handler, *storage.CsvSink) {
	t.Helper()

	sink, err := storage.NewCsvSink(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	sched := scheduler.New(logger.Nop())
	snapshot := handlers.NewSnapshotHandler(sink, logger.Nop())
	status := handlers.NewStatusHandler(sched, logger.Nop())

	return NewRouter(sink, snapshot, status, logger.Nop()), sink
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestOverviewEndpoint(t *testing.T) {
	router, sink := newTestRouter(t)

	ts := time.Date(2026, time.August, 24, 10, 15, 0, 0, time.UTC)
	require.NoError(t, sink.WriteOverview(market.Nifty, storage.BucketThisWeek, 0.85, 300, ts, 24812))

	req := httptest.NewRequest(http.MethodGet, "/api/overview/NIFTY?date=2026-08-24", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Index   string                   `json:"index"`
		Rows    []storage.OverviewRecord `json:"rows"`
		Current *storage.OverviewRecord  `json:"current"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NIFTY", body.Index)
	require.Len(t, body.Rows, 1)
	require.NotNil(t, body.Current)
	assert.Equal(t, 0.85, body.Current.PCRThisWeek)
}

func TestOverviewEndpointUnknownIndex(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/overview/DAX", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptionsEndpointValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/options/NIFTY/someday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/options/NIFTY/this_week?offset=abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing data is an empty result, not an error.
	req = httptest.NewRequest(http.MethodGet, "/api/options/NIFTY/this_week?offset=0", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCollectEndpointUnknownJob(t *testing.T) {
	router, _ := newTestRouter(t)

	// No snapshot job registered in this router; the trigger must fail
	// loudly instead of pretending to run.
	req := httptest.NewRequest(http.MethodPost, "/api/collect", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
