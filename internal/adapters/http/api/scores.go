// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/slotwise/slotwise/internal/domain/scoring"
	"github.com/slotwise/slotwise/internal/domain/types"
)

// ScoresDependencies defines the interface for score map reads.
type ScoresDependencies interface {
	ComputeSimilarity(ctx context.Context) scoring.ScoreMap
	ComputeMatchScores(ctx context.Context) scoring.ScoreMap
}

// ScoresHandler handles score map requests.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleGetSimilarity handles GET /scores/similarity requests.
func (h *ScoresHandler) HandleGetSimilarity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, scoreEntries(h.deps.ComputeSimilarity(r.Context())))
}

// HandleGetMatch handles GET /scores/match requests.
func (h *ScoresHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, scoreEntries(h.deps.ComputeMatchScores(r.Context())))
}

// scoreEntries converts a score map to the API shape, ordered by candidate
// id then expert id for deterministic output.
func scoreEntries(scores scoring.ScoreMap) []types.ScoreEntry {
	out := make([]types.ScoreEntry, 0, len(scores))
	for pair, score := range scores {
		out = append(out, types.ScoreEntry{
			CandidateID: pair.CandidateID,
			ExpertID:    pair.ExpertID,
			Score:       score,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CandidateID != out[j].CandidateID {
			return out[i].CandidateID < out[j].CandidateID
		}
		return out[i].ExpertID < out[j].ExpertID
	})
	return out
}
