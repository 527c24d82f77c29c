package rostergen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRoster submits candidates and experts concurrently using worker
// pools. Each skill becomes its own registration request, repeating the
// entity id, so the service accumulates one interest row per skill.
func submitRoster(ctx context.Context, config *Config, candidates []Candidate, experts []Expert, stats *Stats) error {
	type entry struct {
		url  string
		body interface{}
	}

	entries := make([]entry, 0, len(candidates)+len(experts))
	for _, c := range candidates {
		entries = append(entries, entry{
			url:  config.BaseURL + "/candidates",
			body: CandidateRequest{ID: c.ID, CoreField: c.Field, Email: c.Email},
		})
		for _, skill := range c.Skills {
			entries = append(entries, entry{
				url:  config.BaseURL + "/candidates",
				body: CandidateRequest{ID: c.ID, CoreField: skill, Email: c.Email},
			})
		}
	}
	for _, e := range experts {
		entries = append(entries, entry{
			url:  config.BaseURL + "/experts",
			body: ExpertRequest{ID: e.ID, FieldOfExpertise: e.Field, Email: e.Email},
		})
		for _, skill := range e.Skills {
			entries = append(entries, entry{
				url:  config.BaseURL + "/experts",
				body: ExpertRequest{ID: e.ID, FieldOfExpertise: skill, Email: e.Email},
			})
		}
	}

	total := len(entries)
	log.Printf("Submitting %d roster rows with %d workers...", total, config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	entryChan := make(chan entry, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for e := range entryChan {
				select {
				case <-ctx.Done():
					return
				default:
					ok := submitSingleEntry(ctx, client, e.url, e.body)

					atomic.AddInt64(&submitted, 1)
					if ok {
						atomic.AddInt64(&successful, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						done := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("Progress: %d/%d submitted (success: %d, failed: %d)",
								done, total, succ, fail)
						} else {
							fmt.Printf("\rSubmitted: %d/%d (success: %d, failed: %d)",
								done, total, succ, fail)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(entryChan)
		for _, e := range entries {
			select {
			case <-ctx.Done():
				return
			case entryChan <- e:
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))

	log.Printf("Roster submission completed: successful=%d failed=%d",
		stats.Successful, stats.Failed)

	return nil
}

// submitSingleEntry submits a single roster entry and reports success.
func submitSingleEntry(ctx context.Context, client *HTTPClient, url string, body interface{}) bool {
	resp, err := client.Post(ctx, url, body)
	if err != nil {
		return false
	}

	respBody, err := readResponseBody(resp)
	if err != nil {
		return false
	}

	if resp.StatusCode != StatusCreated {
		return false
	}

	var reg RegisteredResponse
	if err := json.Unmarshal(respBody, &reg); err == nil && reg.ID != "" {
		return true
	}
	return true // Assume success for 201 even if parsing fails
}

// triggerRun calls POST /schedule/run and returns the run summary.
func triggerRun(ctx context.Context, client *HTTPClient, config *Config) (*RunResponse, error) {
	resp, err := client.Post(ctx, config.BaseURL+"/schedule/run", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger scheduling run: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read run response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("scheduling run failed with status %d: %s", resp.StatusCode, string(body))
	}

	var run RunResponse
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run response: %w", err)
	}
	return &run, nil
}

// fetchSchedule calls GET /schedule and decodes the rows.
func fetchSchedule(ctx context.Context, client *HTTPClient, config *Config) ([]ScheduleRow, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/schedule")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("schedule fetch failed with status %d", resp.StatusCode)
	}

	var rows []ScheduleRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return rows, nil
}

// fetchScores calls a scores endpoint and decodes the entries.
func fetchScores(ctx context.Context, client *HTTPClient, url string) ([]ScoreEntry, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read scores response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("scores fetch failed with status %d", resp.StatusCode)
	}

	var entries []ScoreEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return entries, nil
}
