package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/model"
	"github.com/pable/go-nhl-lineup/internal/report"
)

var (
	lineupTeam    string
	lineupAll     bool
	lineupCSV     string
	lineupWorkers int
)

var lineupCmd = &cobra.Command{
	Use:   "lineup <target player>",
	Short: "Build the best defensive lineup against a player",
	Long: `Pick two defensemen and one left wing, centre and right wing from a team's
roster to shut down the named opposing player. The whole league is searched for
the target; an unknown name still produces a lineup, without a threat boost.

Examples:
  nhllineup lineup "Auston Matthews" --team BOS
  nhllineup lineup "Connor McDavid" --all --csv lineups.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLineup,
}

func init() {
	lineupCmd.Flags().StringVar(&lineupTeam, "team", "", "team to build the lineup from")
	lineupCmd.Flags().BoolVar(&lineupAll, "all", false, "build a lineup for every team except the target's")
	lineupCmd.Flags().StringVar(&lineupCSV, "csv", "", "also write the lineups to this CSV file")
	lineupCmd.Flags().IntVar(&lineupWorkers, "workers", 0, "concurrent teams with --all (default from config)")
}

func runLineup(cmd *cobra.Command, args []string) error {
	target := strings.Join(args, " ")
	if lineupTeam == "" && !lineupAll {
		return fmt.Errorf("specify --team <name> or --all")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, _, err := loadLeague(db, importPrefix)
	if err != nil {
		return err
	}

	var picked []model.Team
	if lineupAll {
		targetTeam := loader.TeamNameForPlayer(teams, target)
		for _, t := range teams {
			if t.Name != targetTeam {
				picked = append(picked, t)
			}
		}
	} else {
		t, ok := loader.FindTeam(teams, lineupTeam)
		if !ok {
			return fmt.Errorf("team %q not found", lineupTeam)
		}
		picked = append(picked, t)
	}

	workers := lineupWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	results, err := buildLineups(cmd.Context(), newSelector(), picked, target, lineup.League(teams), workers)
	if err != nil {
		return err
	}

	for _, r := range results {
		report.PrintLineupSummary(os.Stdout, r.Team, target, r.Result)
		report.PrintLineupTable(os.Stdout, r.Result)
	}

	if lineupCSV != "" {
		f, err := os.Create(lineupCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteLineupCSV(f, target, results); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nWrote %d lineup(s) to %s\n", len(results), lineupCSV)
	}
	return nil
}

// buildLineups selects one lineup per team, at most workers at a time.
// Results keep the order of teams.
func buildLineups(ctx context.Context, sel *lineup.Selector, teams []model.Team, target string,
	league lineup.Resolver, workers int) ([]report.TeamLineup, error) {
	results := make([]report.TeamLineup, len(teams))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range teams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = report.TeamLineup{
				Team:   teams[i].Name,
				Result: sel.Select(teams[i], target, league),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Int("teams", len(teams)).Int("workers", workers).Msg("built lineups")
	return results, nil
}
