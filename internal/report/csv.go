package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-nhl-lineup/internal/lineup"
)

// TeamLineup pairs a team name with its selection result.
type TeamLineup struct {
	Team   string
	Result lineup.Result
}

// WriteLineupCSV writes one row per selected player.
func WriteLineupCSV(w io.Writer, target string, lineups []TeamLineup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"team", "target", "threat_boost", "slot", "name", "position",
		"games_played", "def_score", "off_score", "matchup", "composite"}); err != nil {
		return err
	}
	for _, tl := range lineups {
		scores := breakdowns(tl.Result)
		labels := SlotLabels(tl.Result.Lineup)
		for i, p := range tl.Result.Lineup {
			b := scores[p]
			err := cw.Write([]string{
				tl.Team,
				target,
				fmtFloat(tl.Result.ThreatBoost),
				labels[i],
				p.Name,
				p.NormalizedPosition(),
				strconv.Itoa(p.GamesPlayed),
				fmtFloat(b.MatchupDefScore),
				fmtFloat(b.OffScore),
				fmtFloat(b.MatchupMultiplier),
				fmtFloat(b.Composite),
			})
			if err != nil {
				return fmt.Errorf("write %s/%s: %w", tl.Team, p.Name, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
