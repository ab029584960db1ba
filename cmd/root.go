package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/config"
)

var (
	dbPath       string
	configPath   string
	logLevel     string
	importPrefix string

	cfg = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "nhllineup",
	Short: "NHL defensive lineup builder",
	Long: `Import MoneyPuck skater summaries and build the five-skater lineup
(two defensemen, one left wing, one centre, one right wing) best suited to
shut down a named opposing player.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".nhllineup", "lineup.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (falls back to $"+config.EnvPrefix+"CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&importPrefix, "import", "", "import hash prefix to read (default: latest import)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(lineupCmd)
	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sqlCmd)
}

// setup loads configuration and configures the global logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	log.Debug().Str("command", cmd.Name()).Str("db", dbPath).Msg("starting")
	return nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
