// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// RunDependencies defines the interface for triggering a scheduling run.
type RunDependencies interface {
	RunScheduling(ctx context.Context) ([]model.ScheduledInterview, error)
}

// RunHandler handles recompute trigger requests.
type RunHandler struct {
	deps RunDependencies
}

// NewRunHandler creates a new run handler.
func NewRunHandler(deps RunDependencies) *RunHandler {
	return &RunHandler{deps: deps}
}

// HandleRunSchedule handles POST /schedule/run requests. The run replaces
// the persisted schedule wholesale; a persistence failure is the only
// error surfaced to the client.
func (h *RunHandler) HandleRunSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "api.run_schedule"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	placed, err := h.deps.RunScheduling(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "run_failed", WrapKind(op, ErrRunFailed, err))
		return
	}
	writeJSON(w, http.StatusOK, runResponse{
		Status:    "ok",
		Scheduled: len(placed),
		Rows:      scheduleRows(placed),
	})
}
