package model

import "strings"

// Positions as they appear in season data.
const (
	PosGoalie    = "G"
	PosDefense   = "D"
	PosLeftWing  = "L"
	PosCenter    = "C"
	PosRightWing = "R"
)

// ForwardSlots is the fixed order in which forward positions are filled.
var ForwardSlots = []string{PosLeftWing, PosCenter, PosRightWing}

// Player holds one skater's season totals for a single game situation.
// Values are taken as-is from the source data; negative counts are not clamped.
type Player struct {
	Name     string
	Team     string
	Position string

	GamesPlayed int
	IceTime     float64 // minutes
	Shifts      int
	Penalties   int

	// Defence
	ExpectedGoalsAgainst float64
	OnIceXGAPer60        float64
	Hits                 int
	BlockedShots         int
	Takeaways            int
	Giveaways            int

	// Offence
	Goals            int
	Points           int
	ReboundGoals     int
	HighDangerXGoals float64

	// TakeawayEfficiency is attached once by the loader from league-wide
	// normalised takeaways/giveaways.
	TakeawayEfficiency float64
}

// NormalizedPosition returns the trimmed, upper-cased position.
func (p *Player) NormalizedPosition() string {
	return strings.ToUpper(strings.TrimSpace(p.Position))
}

// IsGoalie reports whether the player is listed as a goaltender.
func (p *Player) IsGoalie() bool {
	return p.NormalizedPosition() == PosGoalie
}

// IsForward reports whether the player plays one of the forward slots.
func (p *Player) IsForward() bool {
	switch p.NormalizedPosition() {
	case PosLeftWing, PosCenter, PosRightWing:
		return true
	}
	return false
}

// EffectiveIceTime is the per-60 denominator: ice time in minutes, or 1 when
// there is none.
func (p *Player) EffectiveIceTime() float64 {
	if p.IceTime > 0 {
		return p.IceTime
	}
	return 1
}

// XGAPer60 returns individual expected goals against per 60 minutes.
func (p *Player) XGAPer60() float64 {
	return p.ExpectedGoalsAgainst / p.EffectiveIceTime() * 60.0
}

// Team is a named roster. Rosters may be empty and may repeat names.
type Team struct {
	Name   string
	Roster []Player
}

// Shot is a single shot attempt in rink coordinates (feet, centre ice at 0,0).
type Shot struct {
	X, Y    float64
	Shooter string
	XGoal   float64
}

// ImportSummary is a lightweight record of one stored season import.
type ImportSummary struct {
	Hash       string
	Source     string
	Season     string
	Situation  string
	ImportedAt string
	Teams      int
	Players    int
}
