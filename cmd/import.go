package cmd

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/model"
	"github.com/pable/go-nhl-lineup/internal/report"
	"github.com/pable/go-nhl-lineup/internal/storage"
)

var (
	importSeason    string
	importSituation string
	importTop       int
)

var importCmd = &cobra.Command{
	Use:   "import <skaters.csv[.gz|.zst]>",
	Short: "Import a MoneyPuck skater season summary",
	Long: `Load a MoneyPuck skater season summary, keep the rows of one game
situation (5on5 by default) and store every team's roster. Importing the
same file twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSeason, "season", "", "season label stored with the import (e.g. 2023)")
	importCmd.Flags().StringVar(&importSituation, "situation", "", "game situation to keep (default from config)")
	importCmd.Flags().IntVar(&importTop, "top", 5, "show the N players with the best takeaway efficiency")
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	situation := importSituation
	if situation == "" {
		situation = cfg.Situation
	}
	_, err = doImport(db, args[0], importSeason, situation, importTop)
	return err
}

// importKey identifies a file imported under one situation.
func importKey(fileHash, situation string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(fileHash+"|"+situation)))
}

// doImport is shared by import and fetch --import.
func doImport(db *storage.DB, path, season, situation string, top int) (*model.ImportSummary, error) {
	fileHash, err := loader.HashFile(path)
	if err != nil {
		return nil, err
	}
	hash := importKey(fileHash, situation)

	exists, err := db.ImportExists(hash)
	if err != nil {
		return nil, fmt.Errorf("check import: %w", err)
	}
	if exists {
		imp, err := db.GetImportByPrefix(hash)
		if err != nil || imp == nil {
			return nil, fmt.Errorf("import not found: %s", hash)
		}
		fmt.Fprintf(os.Stdout, "Import %s already stored.\n", hash[:12])
		report.PrintImportSummary(os.Stdout, *imp)
		return imp, nil
	}

	fmt.Fprintf(os.Stdout, "Loading %s...\n", path)
	rc, err := loader.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	teams, stats, err := loader.LoadTeams(rc,
		loader.WithSituation(situation),
		loader.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("load skaters: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no %s rows found in %s", situation, path)
	}

	summary := model.ImportSummary{
		Hash:       hash,
		Source:     filepath.Base(path),
		Season:     season,
		Situation:  situation,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
		Teams:      stats.Teams,
		Players:    stats.Players,
	}
	if err := db.SaveImport(summary, teams); err != nil {
		return nil, fmt.Errorf("save import: %w", err)
	}

	report.PrintImportSummary(os.Stdout, summary)
	if n := stats.Skipped(); n > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d row(s): %d other situation, %d duplicate, %d short, %d malformed\n\n",
			n, stats.OtherSituation, stats.Duplicates, stats.Short, stats.Malformed)
	}
	if top > 0 {
		fmt.Fprintf(os.Stdout, "Top %d by takeaway efficiency:\n", top)
		report.PrintEfficiencyTable(os.Stdout, loader.TopByEfficiency(teams, top))
	}
	return &summary, nil
}
