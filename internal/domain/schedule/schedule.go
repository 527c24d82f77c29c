// Package schedule assigns matched candidate/expert pairs to interview
// slots inside a fixed multi-day calendar window.
//
// The placement walk is a small explicit state machine: a day cursor, a
// time cursor, and a per-day walk counter threaded through the scan as
// locals. Nothing in this package touches storage; the caller feeds it
// rosters and score maps and receives the placed interviews back.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/slotwise/slotwise/internal/domain/model"
	"github.com/slotwise/slotwise/internal/domain/scoring"
	"github.com/slotwise/slotwise/pkg/logger"
)

// Default calendar window constants.
const (
	defaultWindowDays = 5
	defaultDayStart   = 10 * time.Hour
	defaultDayEnd     = 17 * time.Hour
	defaultLunchStart = 13 * time.Hour
	defaultLunchLen   = 30 * time.Minute
	defaultSlotLen    = 30 * time.Minute
	defaultBreakEvery = 3
	defaultBreakLen   = 2 * time.Minute
)

// Scheduler places matched pairs into the earliest conflict-free slot.
type Scheduler struct {
	windowStart time.Time
	windowDays  int
	dayStart    time.Duration
	dayEnd      time.Duration
	lunchStart  time.Duration
	lunchEnd    time.Duration
	slotLen     time.Duration
	breakEvery  int
	breakLen    time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithWindow sets the first calendar day and the number of consecutive days.
func WithWindow(start time.Time, days int) Option {
	return func(s *Scheduler) {
		if !start.IsZero() && days > 0 {
			s.windowStart = start
			s.windowDays = days
		}
	}
}

// WithWorkingHours sets the daily start and end offsets from midnight.
func WithWorkingHours(start, end time.Duration) Option {
	return func(s *Scheduler) {
		if start >= 0 && end > start {
			s.dayStart = start
			s.dayEnd = end
		}
	}
}

// WithLunchBreak sets the daily lunch block during which no slot may start.
func WithLunchBreak(start, length time.Duration) Option {
	return func(s *Scheduler) {
		if start > 0 && length > 0 {
			s.lunchStart = start
			s.lunchEnd = start + length
		}
	}
}

// WithSlotLength sets the fixed interview duration.
func WithSlotLength(length time.Duration) Option {
	return func(s *Scheduler) {
		if length > 0 {
			s.slotLen = length
		}
	}
}

// WithBreaks sets the short pause inserted after every Nth occupied slot
// walked for an expert within one day.
func WithBreaks(every int, length time.Duration) Option {
	return func(s *Scheduler) {
		if every > 0 && length >= 0 {
			s.breakEvery = every
			s.breakLen = length
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scheduler with default calendar configuration.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		windowStart: defaultWindowStart(),
		windowDays:  defaultWindowDays,
		dayStart:    defaultDayStart,
		dayEnd:      defaultDayEnd,
		lunchStart:  defaultLunchStart,
		lunchEnd:    defaultLunchStart + defaultLunchLen,
		slotLen:     defaultSlotLen,
		breakEvery:  defaultBreakEvery,
		breakLen:    defaultBreakLen,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// defaultWindowStart is the upcoming midnight-aligned day; a fixed window
// start normally comes from configuration.
func defaultWindowStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// slotKey identifies one occupied slot for an expert.
type slotKey struct {
	day   int
	start time.Duration
}

// Plan matches every candidate to its best eligible expert and places the
// pair into the earliest open slot. Candidates with no eligible expert or
// no open slot are silently left out of the result.
//
// Candidates are processed in input order; the output is grouped by expert
// in expert input order, then placement order within each expert.
func (s *Scheduler) Plan(ctx context.Context, candidates []model.Candidate, experts []model.Expert, similarity, match scoring.ScoreMap) []model.ScheduledInterview {
	scheduled := make(map[string]struct{}, len(candidates))
	occupied := make(map[string]map[slotKey]struct{}, len(experts))
	booked := make(map[string][]model.ScheduledInterview, len(experts))
	for _, e := range experts {
		occupied[e.ID] = make(map[slotKey]struct{})
	}

	for _, c := range candidates {
		if _, done := scheduled[c.ID]; done {
			continue
		}

		expert, ok := selectExpert(c, experts, similarity, match)
		if !ok {
			continue
		}

		slot, found := s.firstOpenSlot(occupied[expert.ID])
		if !found {
			if s.logger != nil {
				s.logger.Warn(ctx, "calendar window exhausted",
					logger.String("candidate", c.ID),
					logger.String("expert", expert.ID),
				)
			}
			continue
		}

		occupied[expert.ID][slot] = struct{}{}
		scheduled[c.ID] = struct{}{}
		booked[expert.ID] = append(booked[expert.ID], model.ScheduledInterview{
			ExpertID:       expert.ID,
			CandidateID:    c.ID,
			Date:           s.windowStart.AddDate(0, 0, slot.day).Format("2006-01-02"),
			StartTime:      formatClock(slot.start),
			EndTime:        formatClock(slot.start + s.slotLen),
			ExpertEmail:    expert.Email,
			CandidateEmail: c.Email,
		})
	}

	var out []model.ScheduledInterview
	for _, e := range experts {
		out = append(out, booked[e.ID]...)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "schedule generated",
			logger.Int("interviews", len(out)),
			logger.Int("experts", len(experts)),
			logger.Int("candidates", len(candidates)),
		)
	}
	return out
}

// firstOpenSlot scans days in order, then times within each day, and
// returns the first slot not yet occupied for this expert.
func (s *Scheduler) firstOpenSlot(taken map[slotKey]struct{}) (slotKey, bool) {
	windowEnd := time.Duration(s.windowDays-1)*24*time.Hour + s.dayEnd

	for day := 0; day < s.windowDays; day++ {
		t := s.dayStart
		walked := 0
		for t+s.slotLen <= s.dayEnd {
			// Slot starts inside the lunch block jump to its end.
			if t >= s.lunchStart && t < s.lunchEnd {
				t = s.lunchEnd
				continue
			}
			// Pause after every Nth occupied slot walked this day.
			if walked > 0 && walked%s.breakEvery == 0 {
				t += s.breakLen
			}
			// Hard cutoff: never start past the window's last working hour.
			if time.Duration(day)*24*time.Hour+t > windowEnd {
				break
			}
			key := slotKey{day: day, start: t}
			if _, busy := taken[key]; busy {
				t += s.slotLen
				walked++
				continue
			}
			return key, true
		}
	}
	return slotKey{}, false
}

// formatClock renders an offset from midnight as "HH:MM".
func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
