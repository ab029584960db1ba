package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/report"
)

var shotsCmd = &cobra.Command{
	Use:   "shots <shots.csv[.gz|.zst]> <player>",
	Short: "Draw a player's expected-goals heatmap from a MoneyPuck shot log",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runShots,
}

func runShots(cmd *cobra.Command, args []string) error {
	player := strings.Join(args[1:], " ")

	rc, err := loader.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	shots, err := loader.LoadShotsForPlayer(rc, player)
	if err != nil {
		return fmt.Errorf("load shots: %w", err)
	}
	report.PrintShotHeatmap(os.Stdout, player, shots)
	return nil
}
