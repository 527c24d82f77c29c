// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// RosterDependencies defines the interface for roster intake.
type RosterDependencies interface {
	RegisterCandidate(ctx context.Context, id, coreField, email string) (model.Candidate, error)
	RegisterExpert(ctx context.Context, id, field, email string) (model.Expert, error)
}

// RosterHandler handles candidate and expert signup requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandlePostCandidate handles POST /candidates requests. Posting the same
// id again adds a further interest for that candidate.
func (h *RosterHandler) HandlePostCandidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_candidate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	c, err := h.deps.RegisterCandidate(r.Context(), req.ID, req.CoreField, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, registeredResponse{Status: "registered", ID: c.ID})
}

// HandlePostExpert handles POST /experts requests.
func (h *RosterHandler) HandlePostExpert(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_expert"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req expertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	e, err := h.deps.RegisterExpert(r.Context(), req.ID, req.FieldOfExpertise, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, registeredResponse{Status: "registered", ID: e.ID})
}
