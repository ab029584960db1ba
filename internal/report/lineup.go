package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/model"
)

// SlotLabels names each lineup entry by the slot it fills: D1, D2, L, C, R.
func SlotLabels(players []*model.Player) []string {
	labels := make([]string, len(players))
	d := 0
	for i, p := range players {
		pos := p.NormalizedPosition()
		if pos == model.PosDefense {
			d++
			labels[i] = model.PosDefense + strconv.Itoa(d)
			continue
		}
		labels[i] = pos
	}
	return labels
}

func breakdowns(res lineup.Result) map[*model.Player]lineup.Breakdown {
	m := make(map[*model.Player]lineup.Breakdown, len(res.Ranked))
	for _, r := range res.Ranked {
		m[r.Player] = r.Breakdown
	}
	return m
}

func xgaCell(p *model.Player, b lineup.Breakdown) string {
	if p.IceTime <= 0 {
		return missing
	}
	return fmt.Sprintf("%.2f", b.XGAPer60)
}

// PrintLineupTable prints the selected players in pick order with their
// score components.
func PrintLineupTable(w io.Writer, res lineup.Result) {
	if len(res.Lineup) == 0 {
		fmt.Fprintln(w, "No lineup could be generated.")
		return
	}
	scores := breakdowns(res)
	labels := SlotLabels(res.Lineup)

	table := newTable(w)
	table.Header("SLOT", "NAME", "POS", "GP", "TOI", "xGA/60", "HITS", "BLK", "TK", "GV", "G", "P", "DEF", "OFF", "SCORE")
	for i, p := range res.Lineup {
		b := scores[p]
		table.Append(
			labels[i],
			p.Name,
			p.NormalizedPosition(),
			strconv.Itoa(p.GamesPlayed),
			fmt.Sprintf("%.0f", p.IceTime),
			xgaCell(p, b),
			strconv.Itoa(p.Hits),
			strconv.Itoa(p.BlockedShots),
			strconv.Itoa(p.Takeaways),
			strconv.Itoa(p.Giveaways),
			strconv.Itoa(p.Goals),
			strconv.Itoa(p.Points),
			fmt.Sprintf("%.2f", b.MatchupDefScore),
			fmt.Sprintf("%.2f", b.OffScore),
			fmt.Sprintf("%.2f", b.Composite),
		)
	}
	table.Render()
}

// PrintLineupSummary prints the matchup header and score spread of the lineup
// against the rest of the eligible roster.
func PrintLineupSummary(w io.Writer, team, target string, res lineup.Result) {
	if res.Target != nil {
		fmt.Fprintf(w, "\n%s vs %s (%s)  |  threat boost %.2f  |  eligible %d\n",
			team, res.Target.Name, res.Target.Team, res.ThreatBoost, len(res.Ranked))
	} else {
		fmt.Fprintf(w, "\n%s vs %s (not found, no threat boost)  |  eligible %d\n",
			team, target, len(res.Ranked))
	}

	scores := breakdowns(res)
	picked := make([]float64, 0, len(res.Lineup))
	for _, p := range res.Lineup {
		picked = append(picked, scores[p].Composite)
	}
	pool := make([]float64, 0, len(res.Ranked))
	for _, r := range res.Ranked {
		pool = append(pool, r.Composite)
	}
	fmt.Fprintf(w, "Lineup score  %s  |  Eligible roster  %s\n", spread(picked), spread(pool))
}

func spread(xs []float64) string {
	if len(xs) == 0 {
		return "mean " + missing + "  sd " + missing
	}
	mean, sd := stat.MeanStdDev(xs, nil)
	sdStr := missing
	if len(xs) > 1 && !math.IsNaN(sd) {
		sdStr = fmt.Sprintf("%.2f", sd)
	}
	return fmt.Sprintf("mean %.2f  sd %s", mean, sdStr)
}

// PrintRosterTable prints the whole roster ranked by composite score.
// Ineligible players are scored too and flagged; lineup picks are marked ">".
func PrintRosterTable(w io.Writer, team model.Team, sel *lineup.Selector, res lineup.Result) {
	type row struct {
		p        *model.Player
		b        lineup.Breakdown
		eligible bool
	}
	rows := make([]row, 0, len(team.Roster))
	for i := range team.Roster {
		p := &team.Roster[i]
		rows = append(rows, row{p: p, b: sel.Score(p, res.ThreatBoost), eligible: sel.Eligible(p)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].b.Composite > rows[j].b.Composite })

	picked := make(map[*model.Player]bool, len(res.Lineup))
	for _, p := range res.Lineup {
		picked[p] = true
	}

	table := newTable(w)
	table.Header(" ", "NAME", "POS", "GP", "ELIG", "xGA/60", "POSS", "DEF", "OFF", "SCORE")
	for _, r := range rows {
		marker := " "
		if picked[r.p] {
			marker = ">"
		}
		elig := "yes"
		if !r.eligible {
			elig = missing
		}
		table.Append(
			marker,
			r.p.Name,
			r.p.NormalizedPosition(),
			strconv.Itoa(r.p.GamesPlayed),
			elig,
			xgaCell(r.p, r.b),
			fmt.Sprintf("%.2f", r.b.PossessionScore),
			fmt.Sprintf("%.2f", r.b.MatchupDefScore),
			fmt.Sprintf("%.2f", r.b.OffScore),
			fmt.Sprintf("%.2f", r.b.Composite),
		)
	}
	table.Render()
}
