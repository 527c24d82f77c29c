package repository

import (
	"context"
	"sync"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// MemStore implements Store with in-process state. It backs tests and
// deployments that run without a database.
type MemStore struct {
	mu         sync.RWMutex
	candidates []model.Candidate
	experts    []model.Expert
	schedule   []model.ScheduledInterview
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// ListCandidates returns all raw candidate rows in insertion order.
func (s *MemStore) ListCandidates(_ context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

// ListExperts returns all raw expert rows in insertion order.
func (s *MemStore) ListExperts(_ context.Context) ([]model.Expert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Expert, len(s.experts))
	copy(out, s.experts)
	return out, nil
}

// ListSkills derives the skill union from the stored roster rows: every
// declared interest and expertise field counts as one skill token.
func (s *MemStore) ListSkills(_ context.Context) ([]model.SkillRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]model.SkillRow, 0, len(s.candidates)+len(s.experts))
	for _, c := range s.candidates {
		if c.CoreField != "" {
			rows = append(rows, model.SkillRow{EntityID: c.ID, Skill: c.CoreField})
		}
	}
	for _, e := range s.experts {
		if e.FieldOfExpertise != "" {
			rows = append(rows, model.SkillRow{EntityID: e.ID, Skill: e.FieldOfExpertise})
		}
	}
	return rows, nil
}

// AddCandidate appends one raw candidate row. Repeating an id adds a
// further interest row for the same candidate.
func (s *MemStore) AddCandidate(_ context.Context, c model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, c)
	return nil
}

// AddExpert appends one raw expert row.
func (s *MemStore) AddExpert(_ context.Context, e model.Expert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experts = append(s.experts, e)
	return nil
}

// ReplaceSchedule swaps the stored schedule for rows wholesale.
func (s *MemStore) ReplaceSchedule(_ context.Context, rows []model.ScheduledInterview) error {
	out := make([]model.ScheduledInterview, len(rows))
	copy(out, rows)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = out
	return nil
}

// Schedule returns the persisted schedule.
func (s *MemStore) Schedule(_ context.Context) ([]model.ScheduledInterview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScheduledInterview, len(s.schedule))
	copy(out, s.schedule)
	return out, nil
}
