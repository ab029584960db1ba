package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/model"
)

func testTeam() model.Team {
	return model.Team{Name: "BOS", Roster: []model.Player{
		{Name: "Def One", Team: "BOS", Position: "D", GamesPlayed: 80, IceTime: 1500, ExpectedGoalsAgainst: 20, Hits: 100, BlockedShots: 120, Takeaways: 30, Giveaways: 20},
		{Name: "Def Two", Team: "BOS", Position: "D", GamesPlayed: 75, IceTime: 1400, ExpectedGoalsAgainst: 22, Hits: 60, BlockedShots: 90, Takeaways: 20, Giveaways: 25},
		{Name: "Lefty", Team: "BOS", Position: "L", GamesPlayed: 82, IceTime: 1100, ExpectedGoalsAgainst: 15, Goals: 25, Points: 50, Takeaways: 35, Giveaways: 20},
		{Name: "Centre", Team: "BOS", Position: "C", GamesPlayed: 82, IceTime: 1200, ExpectedGoalsAgainst: 16, Goals: 30, Points: 70, Takeaways: 40, Giveaways: 30},
		{Name: "Righty", Team: "BOS", Position: "R", GamesPlayed: 70, IceTime: 1000, ExpectedGoalsAgainst: 14, Goals: 20, Points: 40, Takeaways: 25, Giveaways: 15},
		{Name: "Rookie", Team: "BOS", Position: "C", GamesPlayed: 12, IceTime: 150},
		{Name: "Goalie", Team: "BOS", Position: "G", GamesPlayed: 60},
	}}
}

func TestSlotLabels(t *testing.T) {
	players := []*model.Player{
		{Position: "D"}, {Position: "r"}, {Position: "D"}, {Position: "L"}, {Position: "C"},
	}
	assert.Equal(t, []string{"D1", "R", "D2", "L", "C"}, SlotLabels(players))
}

func TestPrintLineupTable(t *testing.T) {
	team := testTeam()
	res := lineup.NewSelector().Select(team, "Nobody", lineup.League{team})
	require.Len(t, res.Lineup, 5)

	var buf bytes.Buffer
	PrintLineupTable(&buf, res)
	out := buf.String()
	for _, name := range []string{"Def One", "Def Two", "Lefty", "Centre", "Righty"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "Rookie")
	assert.NotContains(t, out, "Goalie")
	assert.Contains(t, out, "SCORE")
}

func TestPrintLineupTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintLineupTable(&buf, lineup.Result{})
	assert.Equal(t, "No lineup could be generated.\n", buf.String())
}

func TestPrintLineupSummary(t *testing.T) {
	team := testTeam()
	star := model.Team{Name: "TOR", Roster: []model.Player{
		{Name: "Star", Team: "TOR", Position: "C", GamesPlayed: 82, Goals: 3, HighDangerXGoals: 1},
	}}
	league := lineup.League{team, star}

	res := lineup.NewSelector().Select(team, "star", league)
	var buf bytes.Buffer
	PrintLineupSummary(&buf, team.Name, "star", res)
	out := buf.String()
	assert.Contains(t, out, "BOS vs Star (TOR)")
	assert.Contains(t, out, "threat boost 0.80")
	assert.Contains(t, out, "eligible 5")
	assert.Contains(t, out, "Lineup score  mean")

	buf.Reset()
	res = lineup.NewSelector().Select(team, "Ghost", league)
	PrintLineupSummary(&buf, team.Name, "Ghost", res)
	assert.Contains(t, buf.String(), "Ghost (not found, no threat boost)")
}

func TestSpread(t *testing.T) {
	assert.Equal(t, "mean — sd —", strings.ReplaceAll(spread(nil), "  ", " "))
	assert.Equal(t, "mean 2.00  sd —", spread([]float64{2}))
	assert.Equal(t, "mean 2.00  sd 1.41", spread([]float64{1, 3}))
}

func TestPrintRosterTable(t *testing.T) {
	team := testTeam()
	sel := lineup.NewSelector()
	res := sel.Select(team, "", nil)

	var buf bytes.Buffer
	PrintRosterTable(&buf, team, sel, res)
	out := buf.String()
	assert.Contains(t, out, "Rookie")
	assert.Contains(t, out, "Goalie")
	assert.Equal(t, 5, strings.Count(out, ">"))
}

func TestWriteLineupCSV(t *testing.T) {
	team := testTeam()
	res := lineup.NewSelector().Select(team, "Nobody", lineup.League{team})

	var buf bytes.Buffer
	require.NoError(t, WriteLineupCSV(&buf, "Nobody", []TeamLineup{{Team: "BOS", Result: res}}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "team", records[0][0])
	for _, rec := range records[1:] {
		assert.Equal(t, "BOS", rec[0])
		assert.Equal(t, "Nobody", rec[1])
		assert.Equal(t, "0.0000", rec[2])
	}
}

func TestBuildHeatmap(t *testing.T) {
	shots := []model.Shot{
		{X: 89, Y: 0, XGoal: 0.3},
		{X: 88, Y: 1, XGoal: 0.2},
		{X: -60, Y: 30, XGoal: 0.05},
		{X: 150, Y: 0, XGoal: 0.9},
	}
	h := BuildHeatmap(shots)
	assert.Equal(t, 4, h.Shots)
	assert.Equal(t, 1, h.Outside)
	assert.InDelta(t, 1.45, h.Total, 1e-9)
	assert.InDelta(t, 0.5, h.Max, 1e-9)

	// x=89 -> 189 ft -> col 18; y=0 -> 42.5 ft -> row 8
	assert.InDelta(t, 0.5, h.Cells[8][18], 1e-9)
	// x=-60 -> 40 ft -> col 4; y=30 -> 12.5 ft -> row 2
	assert.InDelta(t, 0.05, h.Cells[2][4], 1e-9)
}

func TestBuildHeatmap_EdgesClamp(t *testing.T) {
	h := BuildHeatmap([]model.Shot{{X: 100, Y: -42.5, XGoal: 0.1}})
	assert.Zero(t, h.Outside)
	assert.InDelta(t, 0.1, h.Cells[heatRows-1][heatCols-1], 1e-9)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, byte(' '), glyph(0, 1))
	assert.Equal(t, byte('@'), glyph(1, 1))
	assert.Equal(t, byte('.'), glyph(0.01, 1))
}

func TestPrintShotHeatmap(t *testing.T) {
	var buf bytes.Buffer
	PrintShotHeatmap(&buf, "Nobody", nil)
	assert.Equal(t, "No shots found for Nobody.\n", buf.String())

	buf.Reset()
	PrintShotHeatmap(&buf, "Sniper", []model.Shot{{X: 89, Y: 0, XGoal: 0.4}})
	out := buf.String()
	assert.Contains(t, out, "Shot map: Sniper")
	assert.Contains(t, out, "@")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, border, rows, border, legend
	assert.Len(t, lines, 1+1+heatRows+1+1)
}
