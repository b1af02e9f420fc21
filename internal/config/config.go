package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MatchSettings are the per-module knobs read from the Nakama runtime
// environment (runtime.env in the server config).
type MatchSettings struct {
	TickRate     int    `env:"klondike_tick_rate" envDefault:"5"`
	HintsEnabled bool   `env:"klondike_hints_enabled" envDefault:"true"`
	HintLevel    string `env:"klondike_hint_level" envDefault:"smart"`
	// IdleTicks is how many ticks a match survives with its owner
	// disconnected before it terminates.
	IdleTicks int `env:"klondike_idle_ticks" envDefault:"300"`
}

// Nakama accepts match tick rates between 1 and 60.
const (
	minTickRate = 1
	maxTickRate = 60
)

// DefaultMatchSettings returns the settings used when nothing is configured.
func DefaultMatchSettings() MatchSettings {
	return MatchSettings{TickRate: 5, HintsEnabled: true, HintLevel: "smart", IdleTicks: 300}
}

// LoadMatchSettings parses vars, usually the RUNTIME_CTX_ENV map, into
// MatchSettings. The process environment is not consulted.
func LoadMatchSettings(vars map[string]string) (MatchSettings, error) {
	var cfg MatchSettings
	if vars == nil {
		vars = map[string]string{}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return MatchSettings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return MatchSettings{}, err
	}
	return cfg, nil
}

// Validate checks ranges the env tags cannot express.
func (s *MatchSettings) Validate() error {
	if s.TickRate < minTickRate || s.TickRate > maxTickRate {
		return fmt.Errorf("klondike_tick_rate must be between %d and %d, got %d", minTickRate, maxTickRate, s.TickRate)
	}
	if s.IdleTicks < 1 {
		return fmt.Errorf("klondike_idle_ticks must be positive, got %d", s.IdleTicks)
	}
	s.HintLevel = strings.ToLower(strings.TrimSpace(s.HintLevel))
	switch s.HintLevel {
	case "basic", "smart":
	default:
		return fmt.Errorf("klondike_hint_level must be basic or smart, got %q", s.HintLevel)
	}
	return nil
}
