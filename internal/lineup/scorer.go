// Package lineup scores skaters and assembles defensive lineups against a
// named opposing player.
package lineup

import "github.com/pable/go-nhl-lineup/internal/model"

// Coefficients are the per-stat multipliers of the composite score.
type Coefficients struct {
	XGAPer60        float64 `koanf:"xga_per60"`
	Hits            float64 `koanf:"hits"`
	BlockedShots    float64 `koanf:"blocked_shots"`
	Possession      float64 `koanf:"possession"`
	GiveawayPenalty float64 `koanf:"giveaway_penalty"`
	Matchup         float64 `koanf:"matchup"`

	Goals            float64 `koanf:"goals"`
	Points           float64 `koanf:"points"`
	HighDangerXGoals float64 `koanf:"high_danger_xgoals"`
	ReboundGoals     float64 `koanf:"rebound_goals"`
}

// DefaultCoefficients is the current scoring formula.
var DefaultCoefficients = Coefficients{
	XGAPer60:        -1.5,
	Hits:            0.04,
	BlockedShots:    0.05,
	Possession:      2.0,
	GiveawayPenalty: 0.5,
	Matchup:         0.25,

	Goals:            0.15,
	Points:           0.10,
	HighDangerXGoals: 0.08,
	ReboundGoals:     0.10,
}

// Default blend of defensive and offensive contribution.
const (
	DefaultDefWeight = 0.7
	DefaultOffWeight = 0.3
)

// Breakdown holds every intermediate value of one composite score.
type Breakdown struct {
	XGAPer60          float64
	BaseDefScore      float64
	PossessionScore   float64
	DefScore          float64
	MatchupMultiplier float64
	MatchupDefScore   float64
	OffScore          float64
	Composite         float64
}

// Breakdown scores p. threatBoost is expected in [0,1] and scales only the
// defensive term.
func (c Coefficients) Breakdown(p *model.Player, defWeight, offWeight, threatBoost float64) Breakdown {
	var b Breakdown
	b.XGAPer60 = p.ExpectedGoalsAgainst / p.EffectiveIceTime() * 60.0

	b.BaseDefScore = c.XGAPer60*b.XGAPer60 +
		c.Hits*float64(p.Hits) +
		c.BlockedShots*float64(p.BlockedShots)
	b.PossessionScore = c.Possession * (float64(p.Takeaways) - c.GiveawayPenalty*float64(p.Giveaways))
	b.DefScore = b.BaseDefScore + b.PossessionScore

	b.MatchupMultiplier = 1.0 + c.Matchup*threatBoost
	b.MatchupDefScore = b.DefScore * b.MatchupMultiplier

	b.OffScore = c.Goals*float64(p.Goals) +
		c.Points*float64(p.Points) +
		c.HighDangerXGoals*p.HighDangerXGoals +
		c.ReboundGoals*float64(p.ReboundGoals)

	b.Composite = defWeight*b.MatchupDefScore + offWeight*b.OffScore
	return b
}

// Score returns the composite score of p. The target is not read: its threat
// is already folded into threatBoost by the caller.
func (c Coefficients) Score(p, target *model.Player, defWeight, offWeight, threatBoost float64) float64 {
	_ = target
	return c.Breakdown(p, defWeight, offWeight, threatBoost).Composite
}

// CompositeScore scores p with DefaultCoefficients.
func CompositeScore(p, target *model.Player, defWeight, offWeight, threatBoost float64) float64 {
	return DefaultCoefficients.Score(p, target, defWeight, offWeight, threatBoost)
}
