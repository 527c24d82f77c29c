// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PostgresDSN selects the PostgreSQL store when set; empty keeps the
	// in-memory store.
	PostgresDSN string `koanf:"postgres_dsn"`

	// WindowStart is the first calendar day of the interview window,
	// formatted "2006-01-02".
	WindowStart string `koanf:"window_start"`

	// WindowDays is the number of consecutive days in the window.
	WindowDays int `koanf:"window_days"`

	// DayStartHour and DayEndHour bound daily working hours.
	DayStartHour int `koanf:"day_start_hour"`
	DayEndHour   int `koanf:"day_end_hour"`

	// SlotMinutes is the fixed interview duration.
	SlotMinutes int `koanf:"slot_minutes"`

	// LunchStartHour and LunchMinutes define the daily lunch block.
	LunchStartHour int `koanf:"lunch_start_hour"`
	LunchMinutes   int `koanf:"lunch_minutes"`

	// BreakAfter and BreakMinutes configure the short pause inserted after
	// every Nth occupied slot walked for an expert within one day.
	BreakAfter   int `koanf:"break_after"`
	BreakMinutes int `koanf:"break_minutes"`

	// FieldWeight and SkillWeight combine exact-field and skill-overlap
	// scores in the match scorer.
	FieldWeight float64 `koanf:"field_weight"`
	SkillWeight float64 `koanf:"skill_weight"`

	// MaxScheduleLimit caps GET /schedule?limit.
	MaxScheduleLimit int `koanf:"max_schedule_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		PostgresDSN:      "",
		WindowStart:      "2025-05-01",
		WindowDays:       5,
		DayStartHour:     10,
		DayEndHour:       17,
		SlotMinutes:      30,
		LunchStartHour:   13,
		LunchMinutes:     30,
		BreakAfter:       3,
		BreakMinutes:     2,
		FieldWeight:      0.6,
		SkillWeight:      0.4,
		MaxScheduleLimit: 1000,
	}
}

// WindowStartDate parses WindowStart as a calendar day.
func (c *Config) WindowStartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.WindowStart)
	if err != nil {
		return time.Time{}, ErrInvalidConfig
	}
	return t, nil
}
