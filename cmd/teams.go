package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/report"
)

var rosterTarget string

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams of an import with their roster sizes",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

var rosterCmd = &cobra.Command{
	Use:   "roster <team>",
	Short: "Show a team's skaters ranked by composite score",
	Long: `Score every player on the roster, including those too short on games or
playing goal, and mark the five the lineup builder would pick. With --target the
scores carry that player's threat boost.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().StringVar(&rosterTarget, "target", "", "opposing player to score against")
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, imp, err := loadLeague(db, importPrefix)
	if err != nil {
		return err
	}
	report.PrintImportSummary(os.Stdout, *imp)
	report.PrintTeamList(os.Stdout, teams)
	return nil
}

func runRoster(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, _, err := loadLeague(db, importPrefix)
	if err != nil {
		return err
	}
	team, ok := loader.FindTeam(teams, args[0])
	if !ok {
		return fmt.Errorf("team %q not found", args[0])
	}

	sel := newSelector()
	res := sel.Select(team, rosterTarget, lineup.League(teams))
	if rosterTarget != "" {
		report.PrintLineupSummary(os.Stdout, team.Name, rosterTarget, res)
	}
	report.PrintRosterTable(os.Stdout, team, sel, res)
	return nil
}
