package rostergen

import "time"

// Config holds configuration for the roster seeding run
type Config struct {
	BaseURL       string        // Base URL of the service
	NumCandidates int           // Number of candidates to generate
	NumExperts    int           // Number of experts to generate
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Output file for the generated roster
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging

	// Calendar bounds the booked schedule is verified against ("HH:MM").
	// Must mirror the service configuration; empty values fall back to
	// the service defaults.
	DayStart   string
	DayEnd     string
	LunchStart string
	LunchEnd   string
}

// Candidate is one generated candidate. Skills are fanned out into one
// registration request per skill, repeating the id, which is how the
// service accumulates interests.
type Candidate struct {
	ID     string   `json:"id"`
	Field  string   `json:"field"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}

// Expert is one generated expert.
type Expert struct {
	ID     string   `json:"id"`
	Field  string   `json:"field"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}

// CandidateRequest is the JSON body for POST /candidates
type CandidateRequest struct {
	ID        string `json:"id,omitempty"`
	CoreField string `json:"core_field"`
	Email     string `json:"email"`
}

// ExpertRequest is the JSON body for POST /experts
type ExpertRequest struct {
	ID               string `json:"id,omitempty"`
	FieldOfExpertise string `json:"field_of_expertise"`
	Email            string `json:"email"`
}

// RegisteredResponse is the response from roster registration
type RegisteredResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ScheduleRow is a single row of GET /schedule and of the run response
type ScheduleRow struct {
	ExpertID       string `json:"expert_id"`
	CandidateID    string `json:"candidate_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ExpertEmail    string `json:"expert_email"`
	CandidateEmail string `json:"candidate_email"`
}

// RunResponse is the response from POST /schedule/run
type RunResponse struct {
	Status    string        `json:"status"`
	Scheduled int           `json:"scheduled"`
	Rows      []ScheduleRow `json:"rows"`
}

// ScoreEntry is a single entry of GET /scores/similarity or /scores/match
type ScoreEntry struct {
	CandidateID string  `json:"candidate_id"`
	ExpertID    string  `json:"expert_id"`
	Score       float64 `json:"score"`
}

// Stats holds run statistics
type Stats struct {
	CandidatesGenerated int
	ExpertsGenerated    int
	Submitted           int
	Successful          int
	Failed              int
	Scheduled           int
	Unmatched           int
	ScheduleRows        int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
