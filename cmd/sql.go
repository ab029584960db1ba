package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the lineup database",
	Long: `Run an arbitrary SQL query against the lineup database and print results as a table.

Schema overview:
  imports(hash, source, season, situation, imported_at, teams, players)
  players(import_hash, team, name, position, games_played, ice_time, xga,
    on_ice_xga60, hits, takeaways, giveaways, blocked_shots, goals, points,
    rebound_goals, shifts, penalties, hd_xgoals, takeaway_efficiency, roster_order)

ice_time is in minutes. Example:
  nhllineup sql "SELECT name, hits FROM players WHERE team = 'BOS' ORDER BY hits DESC LIMIT 5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.PrintRawTable(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
