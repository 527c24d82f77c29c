// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/scoring"
	"github.com/slotwise/slotwise/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Roster intake.
	RegisterCandidate(ctx context.Context, id, coreField, email string) (model.Candidate, error)
	RegisterExpert(ctx context.Context, id, field, email string) (model.Expert, error)

	// Batch pipeline operations.
	RunScheduling(ctx context.Context) ([]model.ScheduledInterview, error)
	ComputeSimilarity(ctx context.Context) scoring.ScoreMap
	ComputeMatchScores(ctx context.Context) scoring.ScoreMap

	// Read operations expose the persisted schedule.
	Schedule(ctx context.Context) ([]types.ScheduleRow, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	rosterHandler    *RosterHandler
	runHandler       *RunHandler
	scheduleHandler  *ScheduleHandler
	scoresHandler    *ScoresHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxScheduleLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		rosterHandler:    NewRosterHandler(deps),
		runHandler:       NewRunHandler(deps),
		scheduleHandler:  NewScheduleHandler(deps, maxScheduleLimit),
		scoresHandler:    NewScoresHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.rosterHandler.HandlePostCandidate, "candidates"))
	mux.HandleFunc("/experts", MetricsMiddleware(s.rosterHandler.HandlePostExpert, "experts"))
	mux.HandleFunc("/schedule/run", MetricsMiddleware(s.runHandler.HandleRunSchedule, "schedule_run"))
	mux.HandleFunc("/schedule", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
	mux.HandleFunc("/scores/similarity", MetricsMiddleware(s.scoresHandler.HandleGetSimilarity, "scores_similarity"))
	mux.HandleFunc("/scores/match", MetricsMiddleware(s.scoresHandler.HandleGetMatch, "scores_match"))
}

// candidateRequest mirrors the OpenAPI schema for POST /candidates.
type candidateRequest struct {
	ID        string `json:"id"`
	CoreField string `json:"core_field"`
	Email     string `json:"email"`
}

func (c candidateRequest) validate() error {
	switch {
	case strings.TrimSpace(c.CoreField) == "":
		return errors.New("missing core_field")
	case strings.TrimSpace(c.Email) == "":
		return errors.New("missing email")
	}
	return nil
}

// expertRequest mirrors the OpenAPI schema for POST /experts.
type expertRequest struct {
	ID               string `json:"id"`
	FieldOfExpertise string `json:"field_of_expertise"`
	Email            string `json:"email"`
}

func (e expertRequest) validate() error {
	switch {
	case strings.TrimSpace(e.FieldOfExpertise) == "":
		return errors.New("missing field_of_expertise")
	case strings.TrimSpace(e.Email) == "":
		return errors.New("missing email")
	}
	return nil
}

type registeredResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type runResponse struct {
	Status    string              `json:"status"`
	Scheduled int                 `json:"scheduled"`
	Rows      []types.ScheduleRow `json:"rows"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// scheduleRows converts domain interviews to the API read shape.
func scheduleRows(rows []model.ScheduledInterview) []types.ScheduleRow {
	out := make([]types.ScheduleRow, len(rows))
	for i, r := range rows {
		out[i] = types.ScheduleRow{
			ExpertID:       r.ExpertID,
			CandidateID:    r.CandidateID,
			Date:           r.Date,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			ExpertEmail:    r.ExpertEmail,
			CandidateEmail: r.CandidateEmail,
		}
	}
	return out
}
