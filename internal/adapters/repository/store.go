// Package repository defines the roster/schedule store interface and errors.
package repository

import (
	"context"

	"github.com/slotwise/slotwise/internal/domain/model"
)

// Store provides bulk access to roster data and the persisted schedule.
//
// Roster reads return raw rows: an entity appears once per declared
// interest or expertise field, and the caller merges them. ListSkills is
// the union of candidate interests and expert expertise, one row per
// declared field.
type Store interface {
	// ListCandidates returns all raw candidate rows. Entities are ordered
	// by first registration; an entity's fan-out rows keep their declared
	// order but may be grouped together. The merge layer folds rows by
	// first-seen entity, so merged roster order is the same either way.
	ListCandidates(ctx context.Context) ([]model.Candidate, error)

	// ListExperts returns all raw expert rows, ordered like ListCandidates.
	ListExperts(ctx context.Context) ([]model.Expert, error)

	// ListSkills returns the union of interests and expertise rows.
	ListSkills(ctx context.Context) ([]model.SkillRow, error)

	// AddCandidate appends one raw candidate row.
	AddCandidate(ctx context.Context, c model.Candidate) error

	// AddExpert appends one raw expert row.
	AddExpert(ctx context.Context, e model.Expert) error

	// ReplaceSchedule atomically replaces the entire stored schedule.
	ReplaceSchedule(ctx context.Context, rows []model.ScheduledInterview) error

	// Schedule returns the persisted schedule.
	Schedule(ctx context.Context) ([]model.ScheduledInterview, error)
}
