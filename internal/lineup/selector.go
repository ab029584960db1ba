package lineup

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// Selection defaults.
const (
	DefaultMinGamesPlayed = 50
	DefaultThreatScale    = 5.0
	DefaultThreatCap      = 1.0

	defenseSlots = 2
	lineupSize   = 5
)

// Resolver finds an opposing player by name.
type Resolver interface {
	Resolve(name string) (*model.Player, bool)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(name string) (*model.Player, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(name string) (*model.Player, bool) { return f(name) }

// League resolves names across every roster, case-insensitively, in team
// order then roster order. The first match wins.
type League []model.Team

// Resolve returns a pointer into the matching roster entry.
func (l League) Resolve(name string) (*model.Player, bool) {
	for i := range l {
		for j := range l[i].Roster {
			if strings.EqualFold(l[i].Roster[j].Name, name) {
				return &l[i].Roster[j], true
			}
		}
	}
	return nil, false
}

// Option configures a Selector.
type Option func(*Selector)

// WithCoefficients replaces the scoring coefficients.
func WithCoefficients(c Coefficients) Option {
	return func(s *Selector) { s.coeffs = c }
}

// WithWeights sets the defensive/offensive blend.
func WithWeights(def, off float64) Option {
	return func(s *Selector) {
		s.defWeight = def
		s.offWeight = off
	}
}

// WithMinGamesPlayed sets the sample-size gate. Negative values are ignored.
func WithMinGamesPlayed(n int) Option {
	return func(s *Selector) {
		if n >= 0 {
			s.minGamesPlayed = n
		}
	}
}

// WithThreat sets the divisor and cap of the threat boost. Non-positive
// values keep the defaults.
func WithThreat(scale, limit float64) Option {
	return func(s *Selector) {
		if scale > 0 {
			s.threatScale = scale
		}
		if limit > 0 {
			s.threatCap = limit
		}
	}
}

// WithLogger enables per-player score diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Selector) { s.log = l }
}

// Selector ranks a roster and fills lineup slots. It holds only
// configuration and is safe for concurrent use.
type Selector struct {
	coeffs         Coefficients
	defWeight      float64
	offWeight      float64
	minGamesPlayed int
	threatScale    float64
	threatCap      float64
	log            zerolog.Logger
}

// NewSelector returns a Selector with the default formula and thresholds.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		coeffs:         DefaultCoefficients,
		defWeight:      DefaultDefWeight,
		offWeight:      DefaultOffWeight,
		minGamesPlayed: DefaultMinGamesPlayed,
		threatScale:    DefaultThreatScale,
		threatCap:      DefaultThreatCap,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ranked is an eligible player with its score.
type Ranked struct {
	Player *model.Player
	Breakdown
}

// Result is the outcome of one selection.
type Result struct {
	Target      *model.Player // nil when the name did not resolve
	ThreatBoost float64
	Ranked      []Ranked
	Lineup      []*model.Player
}

// Score returns the composite score of p under this selector's configuration.
func (s *Selector) Score(p *model.Player, threatBoost float64) Breakdown {
	return s.coeffs.Breakdown(p, s.defWeight, s.offWeight, threatBoost)
}

// ThreatBoost maps a target's scoring output to [0, cap]. A nil target has
// no threat.
func (s *Selector) ThreatBoost(target *model.Player) float64 {
	if target == nil {
		return 0
	}
	return math.Min((target.HighDangerXGoals+float64(target.Goals))/s.threatScale, s.threatCap)
}

// Eligible reports whether p may be selected: skaters only, with enough games.
func (s *Selector) Eligible(p *model.Player) bool {
	return !p.IsGoalie() && p.GamesPlayed >= s.minGamesPlayed
}

// Rank scores every eligible player and sorts them best first. Ties keep
// roster order.
func (s *Selector) Rank(team model.Team, threatBoost float64) []Ranked {
	ranked := make([]Ranked, 0, len(team.Roster))
	for i := range team.Roster {
		p := &team.Roster[i]
		if !s.Eligible(p) {
			continue
		}
		b := s.Score(p, threatBoost)
		s.log.Debug().
			Str("player", p.Name).
			Float64("xga_per60", b.XGAPer60).
			Float64("def", b.DefScore).
			Float64("off", b.OffScore).
			Float64("matchup", b.MatchupMultiplier).
			Float64("composite", b.Composite).
			Int("takeaways", p.Takeaways).
			Int("giveaways", p.Giveaways).
			Msg("scored player")
		ranked = append(ranked, Ranked{Player: p, Breakdown: b})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Composite > ranked[j].Composite
	})
	return ranked
}

// Select resolves the target, ranks the roster and fills two defense slots
// and one slot per forward position.
func (s *Selector) Select(team model.Team, targetName string, league Resolver) Result {
	var res Result
	if league != nil {
		if p, ok := league.Resolve(targetName); ok {
			res.Target = p
		}
	}
	res.ThreatBoost = s.ThreatBoost(res.Target)
	res.Ranked = s.Rank(team, res.ThreatBoost)
	res.Lineup = fill(res.Ranked)

	s.log.Info().
		Str("team", team.Name).
		Str("target", targetName).
		Bool("target_resolved", res.Target != nil).
		Float64("threat_boost", res.ThreatBoost).
		Int("eligible", len(res.Ranked)).
		Int("selected", len(res.Lineup)).
		Msg("built defensive lineup")
	return res
}

// BestDefensiveLineup returns up to five players from team's roster in the
// order they were picked.
func (s *Selector) BestDefensiveLineup(team model.Team, targetName string, league Resolver) []*model.Player {
	return s.Select(team, targetName, league).Lineup
}

// BestDefensiveLineup uses a default Selector.
func BestDefensiveLineup(team model.Team, targetName string, league Resolver) []*model.Player {
	return NewSelector().BestDefensiveLineup(team, targetName, league)
}

// fill walks the ranking once taking the first two defensemen and the first
// player at each forward slot, then rescans for any forward slot still open.
func fill(ranked []Ranked) []*model.Player {
	lineup := make([]*model.Player, 0, lineupSize)
	defense := 0
	forwards := make(map[string]bool, len(model.ForwardSlots))

	for _, r := range ranked {
		pos := r.Player.NormalizedPosition()
		switch {
		case pos == model.PosDefense && defense < defenseSlots:
			lineup = append(lineup, r.Player)
			defense++
		case isForwardSlot(pos) && !forwards[pos]:
			lineup = append(lineup, r.Player)
			forwards[pos] = true
		}
		if defense == defenseSlots && len(forwards) == len(model.ForwardSlots) {
			break
		}
	}

	for _, pos := range model.ForwardSlots {
		if len(lineup) >= lineupSize {
			break
		}
		if forwards[pos] {
			continue
		}
		for _, r := range ranked {
			if r.Player.NormalizedPosition() == pos && !contains(lineup, r.Player) {
				lineup = append(lineup, r.Player)
				forwards[pos] = true
				break
			}
		}
	}
	return lineup
}

func isForwardSlot(pos string) bool {
	for _, f := range model.ForwardSlots {
		if pos == f {
			return true
		}
	}
	return false
}

func contains(lineup []*model.Player, p *model.Player) bool {
	for _, q := range lineup {
		if q == p {
			return true
		}
	}
	return false
}
