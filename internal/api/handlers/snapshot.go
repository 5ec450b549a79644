package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/internal/storage"
	"github.com/gridsix/g6/pkg/logger"
)

// SnapshotHandler serves collected option snapshots back out of the CSV store.
type SnapshotHandler struct {
	sink   *storage.CsvSink
	logger *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(sink *storage.CsvSink, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		sink:   sink,
		logger: log,
	}
}

// OverviewResponse bundles the raw overview rows for a day with the folded
// per-bucket view.
type OverviewResponse struct {
	Index   string                   `json:"index"`
	Date    string                   `json:"date"`
	Rows    []storage.OverviewRecord `json:"rows"`
	Current *storage.OverviewRecord  `json:"current,omitempty"`
}

// GetOverview returns the overview rows for an index and date
// GET /api/overview/{index}?date=YYYY-MM-DD
func (h *SnapshotHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	index, err := market.ParseIndex(mux.Vars(r)["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	rows, err := h.sink.ReadOptionsOverview(index, date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to read overview")
		respondError(w, http.StatusInternalServerError, "Failed to read overview data")
		return
	}

	resp := OverviewResponse{
		Index: string(index),
		Date:  date.Format("2006-01-02"),
		Rows:  rows,
	}
	if current, ok := storage.ReconstructOverview(rows); ok {
		resp.Current = &current
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetOptions returns the option rows for an index, bucket and offset
// GET /api/options/{index}/{bucket}?offset=0&date=YYYY-MM-DD
func (h *SnapshotHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	index, err := market.ParseIndex(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bucket, err := storage.ParseBucket(vars["bucket"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid offset (expected integer)")
			return
		}
	}

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	rows, err := h.sink.ReadOptionData(index, bucket, offset, date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to read option data")
		respondError(w, http.StatusInternalServerError, "Failed to read option data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"index":  string(index),
		"bucket": string(bucket),
		"offset": offset,
		"date":   date.Format("2006-01-02"),
		"rows":   rows,
	})
}

// parseDate reads the optional date query parameter, defaulting to today.
// On a malformed date it writes the error response and returns false.
func parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), true
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'date' format (expected YYYY-MM-DD)")
		return time.Time{}, false
	}
	return date, true
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
