// Package types contains common types used across the application
package types

// ScoreEntry represents one candidate/expert score as exposed by the API.
type ScoreEntry struct {
	CandidateID string  `json:"candidate_id"`
	ExpertID    string  `json:"expert_id"`
	Score       float64 `json:"score"`
}

// ScheduleRow represents one placed interview as exposed by the API.
type ScheduleRow struct {
	ExpertID       string `json:"expert_id"`
	CandidateID    string `json:"candidate_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ExpertEmail    string `json:"expert_email"`
	CandidateEmail string `json:"candidate_email"`
}
