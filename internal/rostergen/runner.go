package rostergen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slotwise/slotwise/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seed-and-verify cycle.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting roster seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("candidates", config.NumCandidates),
		logger.Int("experts", config.NumExperts),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate the roster
	candidates, experts, err := generateRoster(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("roster generation failed: %w", err)
	}

	// Step 3: Submit roster concurrently
	if err := submitRoster(ctx, config, candidates, experts, stats); err != nil {
		return fmt.Errorf("roster submission failed: %w", err)
	}

	// Step 4: Trigger a scheduling run
	client := newHTTPClient(config.Timeout)
	run, err := triggerRun(ctx, client, config)
	if err != nil {
		return fmt.Errorf("scheduling run failed: %w", err)
	}
	stats.Scheduled = run.Scheduled
	stats.Unmatched = config.NumCandidates - run.Scheduled

	// Step 5: Fetch the booked schedule
	rows, err := fetchSchedule(ctx, client, config)
	if err != nil {
		return fmt.Errorf("schedule retrieval failed: %w", err)
	}
	stats.ScheduleRows = len(rows)

	// Step 6: Fetch scores
	similarity, err := fetchScores(ctx, client, config.BaseURL+"/scores/similarity")
	if err != nil {
		return fmt.Errorf("similarity score retrieval failed: %w", err)
	}
	match, err := fetchScores(ctx, client, config.BaseURL+"/scores/match")
	if err != nil {
		return fmt.Errorf("match score retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifySchedule(config.calendar(), rows, similarity, match); err != nil {
		return fmt.Errorf("schedule verification failed: %w", err)
	}
	displayScheduleSummary(rows, similarity, config.Verbose)

	// Step 8: Save generated roster to file
	if err := saveRosterToFile(ctx, config, candidates, experts); err != nil {
		logger.Get().Warn(ctx, "failed to save roster to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// rosterFile is the JSON document written by saveRosterToFile.
type rosterFile struct {
	Candidates []Candidate `json:"candidates"`
	Experts    []Expert    `json:"experts"`
}

// saveRosterToFile saves the generated roster to a JSON file.
func saveRosterToFile(ctx context.Context, config *Config, candidates []Candidate, experts []Expert) error {
	if len(candidates) == 0 && len(experts) == 0 {
		return fmt.Errorf("no roster entries to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_roster_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rosterFile{Candidates: candidates, Experts: experts}); err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	logger.Get().Info(ctx, "roster saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, entriesPerSecond float64

	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		entriesPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("candidatesGenerated", stats.CandidatesGenerated),
		logger.Int("expertsGenerated", stats.ExpertsGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("scheduled", stats.Scheduled),
		logger.Int("unmatched", stats.Unmatched),
		logger.Int("scheduleRows", stats.ScheduleRows),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("entriesPerSecond", entriesPerSecond))
}
