package loader

import (
	"strings"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// UnknownTeam is reported for players that are on no roster.
const UnknownTeam = "Unknown Team"

// FindPlayer returns the first player, across all teams, whose name matches
// case-insensitively.
func FindPlayer(teams []model.Team, name string) (*model.Player, bool) {
	for i := range teams {
		for j := range teams[i].Roster {
			if strings.EqualFold(teams[i].Roster[j].Name, name) {
				return &teams[i].Roster[j], true
			}
		}
	}
	return nil, false
}

// TeamNameForPlayer returns the name of the first team whose roster lists
// the player, or UnknownTeam.
func TeamNameForPlayer(teams []model.Team, name string) string {
	for _, t := range teams {
		for _, p := range t.Roster {
			if strings.EqualFold(p.Name, name) {
				return t.Name
			}
		}
	}
	return UnknownTeam
}

// FindTeam returns the team with the given name, case-insensitively.
func FindTeam(teams []model.Team, name string) (model.Team, bool) {
	for _, t := range teams {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return model.Team{}, false
}

// AllPlayerNames lists every rostered name in team then roster order.
func AllPlayerNames(teams []model.Team) []string {
	var names []string
	for _, t := range teams {
		for _, p := range t.Roster {
			names = append(names, p.Name)
		}
	}
	return names
}
