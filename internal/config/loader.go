package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SLOTWISE_CONFIG is set
//  3. env (prefix SLOTWISE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SLOTWISE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SLOTWISE_ADDR, SLOTWISE_WINDOW_DAYS, ...
	// Map env keys like SLOTWISE_WINDOW_DAYS -> window_days (flat keys);
	// underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("SLOTWISE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "slotwise_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WindowDays < 1:
		return fmt.Errorf("%w: window_days must be positive", ErrInvalidConfig)
	case c.DayStartHour < 0 || c.DayEndHour > 24 || c.DayEndHour <= c.DayStartHour:
		return fmt.Errorf("%w: working hours out of order", ErrInvalidConfig)
	case c.SlotMinutes < 1:
		return fmt.Errorf("%w: slot_minutes must be positive", ErrInvalidConfig)
	case c.BreakAfter < 1 || c.BreakMinutes < 0:
		return fmt.Errorf("%w: break settings out of range", ErrInvalidConfig)
	case c.FieldWeight < 0 || c.SkillWeight < 0 || c.FieldWeight+c.SkillWeight == 0:
		return fmt.Errorf("%w: score weights out of range", ErrInvalidConfig)
	}
	if _, err := c.WindowStartDate(); err != nil {
		return fmt.Errorf("%w: window_start must be formatted 2006-01-02", ErrInvalidConfig)
	}
	return nil
}
