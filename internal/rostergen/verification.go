package rostergen

import (
	"fmt"
	"log"
)

// Service-default calendar bounds, used when the flags leave them unset.
const (
	defaultDayStart   = "10:00"
	defaultDayEnd     = "17:00"
	defaultLunchStart = "13:00"
	defaultLunchEnd   = "13:30"
)

// calendar holds the working-hours bounds the schedule is verified against.
type calendar struct {
	dayStart   string
	dayEnd     string
	lunchStart string
	lunchEnd   string
}

// calendar resolves the verification bounds, falling back to the service
// defaults for any bound the flags left empty.
func (c *Config) calendar() calendar {
	cal := calendar{
		dayStart:   c.DayStart,
		dayEnd:     c.DayEnd,
		lunchStart: c.LunchStart,
		lunchEnd:   c.LunchEnd,
	}
	if cal.dayStart == "" {
		cal.dayStart = defaultDayStart
	}
	if cal.dayEnd == "" {
		cal.dayEnd = defaultDayEnd
	}
	if cal.lunchStart == "" {
		cal.lunchStart = defaultLunchStart
	}
	if cal.lunchEnd == "" {
		cal.lunchEnd = defaultLunchEnd
	}
	return cal
}

// verifySchedule checks the booked schedule against the scheduling
// invariants: no expert slot double-booked, every candidate booked at
// most once, all slots inside working hours, no start inside lunch.
// A slot may legitimately run into lunch (the break timing shifts the
// grid), so only the start time is constrained.
func verifySchedule(cal calendar, rows []ScheduleRow, similarity, match []ScoreEntry) error {
	log.Println("Verifying schedule...")

	if len(rows) == 0 {
		return fmt.Errorf("no schedule rows to verify")
	}

	type slot struct {
		expert string
		date   string
		start  string
	}

	seenSlots := make(map[slot]string, len(rows))
	seenCandidates := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		s := slot{expert: row.ExpertID, date: row.Date, start: row.StartTime}
		if prev, ok := seenSlots[s]; ok {
			return fmt.Errorf("row %d: expert %s double-booked on %s %s (already holds %s)",
				i, row.ExpertID, row.Date, row.StartTime, prev)
		}
		seenSlots[s] = row.CandidateID

		if _, ok := seenCandidates[row.CandidateID]; ok {
			return fmt.Errorf("row %d: candidate %s booked more than once", i, row.CandidateID)
		}
		seenCandidates[row.CandidateID] = struct{}{}

		if row.StartTime < cal.dayStart || row.EndTime > cal.dayEnd {
			return fmt.Errorf("row %d: slot %s-%s outside working hours", i, row.StartTime, row.EndTime)
		}

		if row.StartTime >= cal.lunchStart && row.StartTime < cal.lunchEnd {
			return fmt.Errorf("row %d: slot starts at %s inside lunch", i, row.StartTime)
		}
	}

	if err := verifyScores("similarity", similarity); err != nil {
		return err
	}
	if err := verifyScores("match", match); err != nil {
		return err
	}

	log.Println("Schedule verification completed")
	return nil
}

// verifyScores checks that every score is within [0, 1] and carries a
// candidate per entry at most once.
func verifyScores(name string, entries []ScoreEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.Score < 0 || e.Score > 1 {
			return fmt.Errorf("%s entry %d: score %.4f outside [0, 1]", name, i, e.Score)
		}
		if _, ok := seen[e.CandidateID]; ok {
			return fmt.Errorf("%s entry %d: candidate %s appears more than once", name, i, e.CandidateID)
		}
		seen[e.CandidateID] = struct{}{}
	}
	return nil
}

// displayScheduleSummary shows the head of the schedule and score spreads.
func displayScheduleSummary(rows []ScheduleRow, similarity []ScoreEntry, verbose bool) {
	topN := 10
	if len(rows) < topN {
		topN = len(rows)
	}

	log.Printf("First %d booked interviews:", topN)
	for i := 0; i < topN; i++ {
		row := rows[i]
		log.Printf("   %s %s-%s expert=%s candidate=%s",
			row.Date, row.StartTime, row.EndTime, row.ExpertID, row.CandidateID)
	}

	if verbose && len(similarity) > 0 {
		minScore, maxScore, sum := similarity[0].Score, similarity[0].Score, 0.0
		for _, e := range similarity {
			if e.Score < minScore {
				minScore = e.Score
			}
			if e.Score > maxScore {
				maxScore = e.Score
			}
			sum += e.Score
		}
		log.Printf("Similarity spread: avg=%.3f max=%.3f min=%.3f",
			sum/float64(len(similarity)), maxScore, minScore)
	}
}
