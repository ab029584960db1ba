package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/moneypuck"
)

// fetch command flags.
var (
	// fetchSeason is the start year of the season, e.g. 2023 for 2023-24.
	fetchSeason int
	// fetchPlayoffs selects the playoff summary instead of the regular season.
	fetchPlayoffs bool
	// fetchOut is the directory downloads are written to.
	fetchOut string
	// fetchImport stores the downloaded file right away.
	fetchImport bool
	// fetchBaseURL overrides the export host.
	fetchBaseURL string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a MoneyPuck skater season summary",
	Long: `Downloads the skater season summary for one season from MoneyPuck and
optionally imports it.

Examples:
  nhllineup fetch --season 2023 --import
  nhllineup fetch --season 2022 --playoffs --out ./data`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	defaultOut := filepath.Join(mustUserHome(), ".nhllineup", "data")
	fetchCmd.Flags().IntVar(&fetchSeason, "season", 0, "season start year, e.g. 2023 (required)")
	fetchCmd.Flags().BoolVar(&fetchPlayoffs, "playoffs", false, "fetch the playoff summary")
	fetchCmd.Flags().StringVar(&fetchOut, "out", defaultOut, "download directory")
	fetchCmd.Flags().BoolVar(&fetchImport, "import", false, "import the file after downloading")
	fetchCmd.Flags().StringVar(&fetchBaseURL, "base-url", moneypuck.DefaultBaseURL, "MoneyPuck player data root")
	_ = fetchCmd.MarkFlagRequired("season")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchSeason < 2008 {
		return fmt.Errorf("invalid season %d: MoneyPuck summaries start in 2008", fetchSeason)
	}

	client := moneypuck.NewClient(fetchBaseURL)
	fmt.Fprintf(os.Stdout, "Downloading %d skater summary...\n", fetchSeason)
	path, err := client.DownloadSkaters(cmd.Context(), fetchSeason, fetchPlayoffs, fetchOut)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	log.Info().Str("path", path).Int("season", fetchSeason).Msg("downloaded skater summary")
	fmt.Fprintf(os.Stdout, "Saved %s\n", path)

	if !fetchImport {
		return nil
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = doImport(db, path, strconv.Itoa(fetchSeason), cfg.Situation, 5)
	return err
}
