// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/slotwise/slotwise/internal/adapters/repository"
	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/roster"
	"github.com/slotwise/slotwise/internal/domain/schedule"
	"github.com/slotwise/slotwise/internal/domain/scoring"
	"github.com/slotwise/slotwise/internal/domain/types"
	"github.com/slotwise/slotwise/pkg/logger"
	"github.com/slotwise/slotwise/pkg/metrics"
)

// Service implements the API dependencies for the matching and scheduling
// system. The full pipeline (bulk read, scoring, matching, slot placement,
// bulk write) is one synchronous unit of work; runMu guarantees at most
// one recompute at a time while the engine itself stays lock-free.
type Service struct {
	mu    sync.RWMutex
	runMu sync.Mutex

	// Core components
	store      repository.Store
	similarity *scoring.SimilarityScorer
	matcher    *scoring.MatchScorer
	scheduler  *schedule.Scheduler

	// Configuration
	fieldWeight  float64
	skillWeight  float64
	calendarOpts []schedule.Option

	// State
	started       bool
	lastRun       time.Time
	lastScheduled int
	lastUnmatched int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the roster/schedule store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithScoreWeights sets the match scorer's field and skill weights.
func WithScoreWeights(fieldWeight, skillWeight float64) Option {
	return func(s *Service) {
		if fieldWeight >= 0 && skillWeight >= 0 && fieldWeight+skillWeight > 0 {
			s.fieldWeight = fieldWeight
			s.skillWeight = skillWeight
		}
	}
}

// WithCalendar forwards calendar window options to the scheduler.
func WithCalendar(opts ...schedule.Option) Option {
	return func(s *Service) {
		s.calendarOpts = append(s.calendarOpts, opts...)
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fieldWeight: 0.6,
		skillWeight: 0.4,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scheduling service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	s.similarity = scoring.NewSimilarityScorer(
		scoring.WithSimilarityLogger(s.logger.Named("similarity")),
	)
	s.matcher = scoring.NewMatchScorer(
		scoring.WithWeights(s.fieldWeight, s.skillWeight),
		scoring.WithMatchLogger(s.logger.Named("match")),
	)
	s.scheduler = schedule.New(append(
		[]schedule.Option{schedule.WithLogger(s.logger.Named("schedule"))},
		s.calendarOpts...,
	)...)

	s.started = true
	s.logger.Info(ctx, "scheduling service started",
		logger.Float64("fieldWeight", s.fieldWeight),
		logger.Float64("skillWeight", s.skillWeight),
	)

	return nil
}

// Stop shuts the service down and releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "scheduling service stopped")
}

// loadRoster bulk-reads and merges the roster. Read failures degrade to an
// empty roster; scoring and scheduling treat that as no data.
func (s *Service) loadRoster(ctx context.Context) ([]model.Candidate, []model.Expert, roster.SkillSet) {
	candidateRows, err := s.store.ListCandidates(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading candidates failed", logger.Error(err))
	}
	expertRows, err := s.store.ListExperts(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading experts failed", logger.Error(err))
	}
	skillRows, err := s.store.ListSkills(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading skills failed", logger.Error(err))
	}

	candidates := roster.MergeCandidates(candidateRows)
	experts := roster.MergeExperts(expertRows)
	metrics.UpdateRosterCandidates(len(candidates))
	metrics.UpdateRosterExperts(len(experts))
	return candidates, experts, roster.BuildSkillSets(skillRows)
}

// ComputeSimilarity returns the best-cosine expert per candidate.
func (s *Service) ComputeSimilarity(ctx context.Context) scoring.ScoreMap {
	candidates, experts, _ := s.loadRoster(ctx)
	scores := s.similarity.BestByCosine(ctx, candidates, experts)
	metrics.UpdateSimilarityScoreCount(len(scores))
	return scores
}

// ComputeMatchScores returns the best weighted field/skill score per candidate.
func (s *Service) ComputeMatchScores(ctx context.Context) scoring.ScoreMap {
	candidates, experts, skills := s.loadRoster(ctx)
	scores := s.matcher.Best(ctx, candidates, experts, skills)
	metrics.UpdateMatchScoreCount(len(scores))
	return scores
}

// RunScheduling executes one full matching-and-scheduling pass and
// replaces the persisted schedule with the result. The final write is the
// only failure that surfaces; missing data and unmatched candidates
// degrade to a smaller (possibly empty) schedule.
func (s *Service) RunScheduling(ctx context.Context) ([]model.ScheduledInterview, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	candidates, experts, skills := s.loadRoster(ctx)

	similarity := s.similarity.BestByCosine(ctx, candidates, experts)
	match := s.matcher.Best(ctx, candidates, experts, skills)
	metrics.UpdateSimilarityScoreCount(len(similarity))
	metrics.UpdateMatchScoreCount(len(match))

	placed := s.scheduler.Plan(ctx, candidates, experts, similarity, match)

	if err := s.store.ReplaceSchedule(ctx, placed); err != nil {
		metrics.RecordPersistenceError()
		s.logger.Error(ctx, "persisting schedule failed", logger.Error(err))
		return nil, fmt.Errorf("persist schedule: %w", err)
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastScheduled = len(placed)
	s.lastUnmatched = len(candidates) - len(placed)
	s.mu.Unlock()

	metrics.RecordRun()
	metrics.RecordRunDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateScheduledInterviews(len(placed))
	metrics.UpdateUnmatchedCandidates(len(candidates) - len(placed))

	s.logger.Info(ctx, "scheduling run complete",
		logger.Int("scheduled", len(placed)),
		logger.Int("unmatched", len(candidates)-len(placed)),
		logger.Duration("took", time.Since(start)),
	)
	return placed, nil
}

// Schedule returns the persisted schedule.
func (s *Service) Schedule(ctx context.Context) ([]types.ScheduleRow, error) {
	rows, err := s.store.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
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
	return out, nil
}

// RegisterCandidate stores one candidate interest row, generating an id
// when none is supplied, and returns the stored record.
func (s *Service) RegisterCandidate(ctx context.Context, id, coreField, email string) (model.Candidate, error) {
	if id == "" {
		id = uuid.NewString()
	}
	c := model.Candidate{ID: id, CoreField: coreField, Email: email}
	if err := s.store.AddCandidate(ctx, c); err != nil {
		return model.Candidate{}, fmt.Errorf("register candidate: %w", err)
	}
	return c, nil
}

// RegisterExpert stores one expert expertise row, generating an id when
// none is supplied, and returns the stored record.
func (s *Service) RegisterExpert(ctx context.Context, id, field, email string) (model.Expert, error) {
	if id == "" {
		id = uuid.NewString()
	}
	e := model.Expert{ID: id, FieldOfExpertise: field, Email: email}
	if err := s.store.AddExpert(ctx, e); err != nil {
		return model.Expert{}, fmt.Errorf("register expert: %w", err)
	}
	return e, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"last_scheduled": s.lastScheduled,
		"last_unmatched": s.lastUnmatched,
	}
	if !s.lastRun.IsZero() {
		stats["last_run"] = s.lastRun.UTC().Format(time.RFC3339)
	}
	return stats
}
