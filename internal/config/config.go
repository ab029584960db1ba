// Package config loads scoring and selection settings.
package config

import (
	"github.com/pable/go-nhl-lineup/internal/lineup"
)

// Config holds every tunable of the scorer, selector and CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Situation is the game-state subset kept at import, e.g. "5on5".
	Situation string `koanf:"situation"`

	MinGamesPlayed int     `koanf:"min_games_played"`
	DefWeight      float64 `koanf:"def_weight"`
	OffWeight      float64 `koanf:"off_weight"`
	ThreatScale    float64 `koanf:"threat_scale"`
	ThreatCap      float64 `koanf:"threat_cap"`

	Coefficients lineup.Coefficients `koanf:"coefficients"`

	// Workers bounds concurrent per-team lineup builds.
	Workers int `koanf:"workers"`

	// AnalyzeModel is the Anthropic model used by `analyze`.
	AnalyzeModel string `koanf:"analyze_model"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "warn",
		Situation:      "5on5",
		MinGamesPlayed: lineup.DefaultMinGamesPlayed,
		DefWeight:      lineup.DefaultDefWeight,
		OffWeight:      lineup.DefaultOffWeight,
		ThreatScale:    lineup.DefaultThreatScale,
		ThreatCap:      lineup.DefaultThreatCap,
		Coefficients:   lineup.DefaultCoefficients,
		Workers:        4,
		AnalyzeModel:   "claude-haiku-4-5-20251001",
	}
}

// SelectorOptions converts the config into lineup options.
func (c *Config) SelectorOptions() []lineup.Option {
	return []lineup.Option{
		lineup.WithCoefficients(c.Coefficients),
		lineup.WithWeights(c.DefWeight, c.OffWeight),
		lineup.WithMinGamesPlayed(c.MinGamesPlayed),
		lineup.WithThreat(c.ThreatScale, c.ThreatCap),
	}
}
