package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/model"
	"github.com/pable/go-nhl-lineup/internal/storage"
)

var errNoImports = errors.New("no imports stored yet; run 'nhllineup import <skaters.csv>' first")

// openStore opens the database, creating its directory when needed.
func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// resolveImport picks the import named by --import, or the latest one.
func resolveImport(db *storage.DB, prefix string) (*model.ImportSummary, error) {
	if prefix != "" {
		imp, err := db.GetImportByPrefix(prefix)
		if err != nil {
			return nil, fmt.Errorf("find import: %w", err)
		}
		if imp == nil {
			return nil, fmt.Errorf("no import found with prefix %q", prefix)
		}
		return imp, nil
	}
	imp, err := db.LatestImport()
	if err != nil {
		return nil, fmt.Errorf("find latest import: %w", err)
	}
	if imp == nil {
		return nil, errNoImports
	}
	return imp, nil
}

// loadLeague reads every team of the selected import.
func loadLeague(db *storage.DB, prefix string) ([]model.Team, *model.ImportSummary, error) {
	imp, err := resolveImport(db, prefix)
	if err != nil {
		return nil, nil, err
	}
	teams, err := db.LoadTeams(imp.Hash)
	if err != nil {
		return nil, nil, fmt.Errorf("load teams: %w", err)
	}
	log.Debug().Str("import", imp.Hash).Int("teams", len(teams)).Msg("loaded league")
	return teams, imp, nil
}

// newSelector builds a selector from the active configuration.
func newSelector() *lineup.Selector {
	opts := append(cfg.SelectorOptions(), lineup.WithLogger(log.Logger))
	return lineup.NewSelector(opts...)
}
