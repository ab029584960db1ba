package loader

import (
	"math"
	"sort"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// ApplyTakeawayEfficiency sets each player's TakeawayEfficiency to
// 2*normTakeaways - 0.5*normGiveaways, where both counts are min-max
// normalised over the whole league. A flat distribution normalises to 0.
func ApplyTakeawayEfficiency(teams []model.Team) {
	minTake, maxTake := math.MaxInt, math.MinInt
	minGive, maxGive := math.MaxInt, math.MinInt
	for _, t := range teams {
		for _, p := range t.Roster {
			minTake = min(minTake, p.Takeaways)
			maxTake = max(maxTake, p.Takeaways)
			minGive = min(minGive, p.Giveaways)
			maxGive = max(maxGive, p.Giveaways)
		}
	}

	for i := range teams {
		for j := range teams[i].Roster {
			p := &teams[i].Roster[j]
			normTake := normalize(p.Takeaways, minTake, maxTake)
			normGive := normalize(p.Giveaways, minGive, maxGive)
			p.TakeawayEfficiency = 2.0*normTake - 0.5*normGive
		}
	}
}

func normalize(v, lo, hi int) float64 {
	if hi == lo {
		return 0
	}
	return float64(v-lo) / float64(hi-lo)
}

// TopByEfficiency returns up to n players with the highest takeaway
// efficiency, league-wide. Ties keep team then roster order.
func TopByEfficiency(teams []model.Team, n int) []*model.Player {
	var all []*model.Player
	for i := range teams {
		for j := range teams[i].Roster {
			all = append(all, &teams[i].Roster[j])
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TakeawayEfficiency > all[j].TakeawayEfficiency
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
