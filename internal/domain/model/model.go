// Package model contains domain models passed between layers.
package model

// Candidate represents a registered interviewee.
// Immutable once stored; CoreField may join several declared interests
// into one space-separated value.
type Candidate struct {
	ID        string // unique candidate identifier
	CoreField string // declared field of interest (free text)
	Email     string
}

// Expert represents an interviewer loaded as reference data once per run.
type Expert struct {
	ID               string // unique expert identifier
	FieldOfExpertise string // declared expertise field (free text)
	Email            string
}

// SkillRow is one raw skill record: the union of candidate interests and
// expert expertise as loaded from the store.
type SkillRow struct {
	EntityID string // candidate or expert id
	Skill    string // single skill token (free text)
}

// Pair keys a score for one candidate/expert combination.
type Pair struct {
	CandidateID string
	ExpertID    string
}

// ScheduledInterview is one placed interview slot.
// No two interviews share (ExpertID, Date, StartTime) and a candidate
// appears in at most one interview per scheduling run.
type ScheduledInterview struct {
	ExpertID       string
	CandidateID    string
	Date           string // calendar day, "2006-01-02"
	StartTime      string // "15:04"
	EndTime        string // "15:04"
	ExpertEmail    string
	CandidateEmail string
}
