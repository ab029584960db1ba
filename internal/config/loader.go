package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. NHLLINEUP_MIN_GAMES_PLAYED.
const EnvPrefix = "NHLLINEUP_"

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file at path, or at $NHLLINEUP_CONFIG when path is empty
//  3. env vars with the NHLLINEUP_ prefix
//
// Nested coefficient keys use a double underscore:
// NHLLINEUP_COEFFICIENTS__HITS=0.02.
func Load(path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if s == "config" {
			return ""
		}
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the selector cannot use.
func (c *Config) Validate() error {
	co := c.Coefficients
	for name, v := range map[string]float64{
		"def_weight":                      c.DefWeight,
		"off_weight":                      c.OffWeight,
		"threat_scale":                    c.ThreatScale,
		"threat_cap":                      c.ThreatCap,
		"coefficients.xga_per60":          co.XGAPer60,
		"coefficients.hits":               co.Hits,
		"coefficients.blocked_shots":      co.BlockedShots,
		"coefficients.possession":         co.Possession,
		"coefficients.giveaway_penalty":   co.GiveawayPenalty,
		"coefficients.matchup":            co.Matchup,
		"coefficients.goals":              co.Goals,
		"coefficients.points":             co.Points,
		"coefficients.high_danger_xgoals": co.HighDangerXGoals,
		"coefficients.rebound_goals":      co.ReboundGoals,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, name)
		}
	}
	if c.MinGamesPlayed < 0 {
		return fmt.Errorf("%w: min_games_played must be >= 0", ErrInvalidConfig)
	}
	if c.ThreatScale <= 0 {
		return fmt.Errorf("%w: threat_scale must be > 0", ErrInvalidConfig)
	}
	if c.ThreatCap <= 0 {
		return fmt.Errorf("%w: threat_cap must be > 0", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Situation) == "" {
		return fmt.Errorf("%w: situation must not be empty", ErrInvalidConfig)
	}
	return nil
}
