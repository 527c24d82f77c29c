package rostergen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/slotwise/slotwise/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed-roster tool.
func ShowHelp() {
	os.Stdout.WriteString(`Slotwise Roster Seeder
======================

A concurrent tool for seeding the scheduling service with a synthetic
roster, triggering a scheduling run and verifying the booked schedule.

Usage:
  go run cmd/seed-roster/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -candidates int
        Number of candidates to generate and submit (default 200)
  -experts int
        Number of experts to generate and submit (default 40)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for the generated roster (default: generated_roster_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -day-start string
        Working day start (HH:MM) the verifier assumes (default "10:00")
  -day-end string
        Working day end (HH:MM) the verifier assumes (default "17:00")
  -lunch-start string
        Lunch start (HH:MM) the verifier assumes (default "13:00")
  -lunch-end string
        Lunch end (HH:MM) the verifier assumes (default "13:30")
  -help
        Show this help message

The verifier assumes the service runs the default calendar unless the
-day-start/-day-end/-lunch-start/-lunch-end flags say otherwise; point
them at the service's configured window when it deviates.

Examples:
  # Seed with default settings
  go run cmd/seed-roster/main.go

  # Seed with custom parameters
  go run cmd/seed-roster/main.go -candidates 1000 -experts 100 -url http://localhost:8080

  # Seed with verbose output
  go run cmd/seed-roster/main.go -verbose -candidates 500

  # Seed with custom log file
  go run cmd/seed-roster/main.go -candidates 500 -log my_seed.log
`)
}
