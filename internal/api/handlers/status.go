package handlers

import (
	"net/http"

	"github.com/gridsix/g6/internal/scheduler"
	"github.com/gridsix/g6/pkg/logger"
)

// StatusHandler exposes scheduler state and lets a manual cycle be triggered.
type StatusHandler struct {
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(sched *scheduler.Scheduler, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		scheduler: sched,
		logger:    log,
	}
}

// GetStatus returns per-job run statistics
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scheduler.GetJobStats())
}

// TriggerCollect kicks off a snapshot cycle outside the schedule
// POST /api/collect
func (h *StatusHandler) TriggerCollect(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.RunJob("options_snapshot"); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("Manual collection cycle triggered")
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"message": "Collection cycle started",
	})
}
