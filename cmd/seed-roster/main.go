package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/slotwise/slotwise/internal/rostergen"
)

// Default configuration constants.
const (
	defaultCandidates = 200
	defaultExperts    = 40
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		candidates = flag.Int("candidates", defaultCandidates, "Number of candidates to generate and submit")
		experts    = flag.Int("experts", defaultExperts, "Number of experts to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for the generated roster (default: generated_roster_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		dayStart   = flag.String("day-start", "", "Working day start (HH:MM) the verifier assumes; must mirror the service config (default 10:00)")
		dayEnd     = flag.String("day-end", "", "Working day end (HH:MM) the verifier assumes (default 17:00)")
		lunchStart = flag.String("lunch-start", "", "Lunch start (HH:MM) the verifier assumes (default 13:00)")
		lunchEnd   = flag.String("lunch-end", "", "Lunch end (HH:MM) the verifier assumes (default 13:30)")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rostergen.ShowHelp()
		return
	}

	// Setup logging
	if err := rostergen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create seeding configuration
	config := &rostergen.Config{
		BaseURL:       *baseURL,
		NumCandidates: *candidates,
		NumExperts:    *experts,
		Workers:       *workers,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		LogFile:       *logFile,
		Verbose:       *verbose,
		DayStart:      *dayStart,
		DayEnd:        *dayEnd,
		LunchStart:    *lunchStart,
		LunchEnd:      *lunchEnd,
	}

	// Run the seeding cycle
	if err := rostergen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding run failed: " + err.Error() + "\n")
		return
	}
}
