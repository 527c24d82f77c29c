// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/slotwise/slotwise/internal/domain/types"
)

// ScheduleDependencies defines the interface for schedule reads.
type ScheduleDependencies interface {
	Schedule(ctx context.Context) ([]types.ScheduleRow, error)
}

// ScheduleHandler handles persisted schedule reads.
type ScheduleHandler struct {
	deps     ScheduleDependencies
	maxLimit int
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies, maxLimit int) *ScheduleHandler {
	return &ScheduleHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetSchedule handles GET /schedule?limit=N requests. The limit is
// optional; when present it must be positive and within the configured cap.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_schedule"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	rows, err := h.deps.Schedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	writeJSON(w, http.StatusOK, rows)
}
