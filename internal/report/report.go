// Package report renders imports, rosters and lineups as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-nhl-lineup/internal/model"
)

const missing = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// PrintImportSummary prints a one-line summary header for an import.
func PrintImportSummary(w io.Writer, s model.ImportSummary) {
	season := s.Season
	if season == "" {
		season = missing
	}
	fmt.Fprintf(w, "\nSource: %s  |  Season: %s  |  Situation: %s  |  Teams: %d  |  Players: %d  |  Hash: %s\n\n",
		s.Source, season, s.Situation, s.Teams, s.Players, shortHash(s.Hash))
}

// PrintImportList prints every stored import, newest first.
func PrintImportList(w io.Writer, imports []model.ImportSummary) {
	table := newTable(w)
	table.Header("HASH", "SOURCE", "SEASON", "SITUATION", "TEAMS", "PLAYERS", "IMPORTED")
	for _, s := range imports {
		season := s.Season
		if season == "" {
			season = missing
		}
		table.Append(
			shortHash(s.Hash),
			s.Source,
			season,
			s.Situation,
			strconv.Itoa(s.Teams),
			strconv.Itoa(s.Players),
			s.ImportedAt,
		)
	}
	table.Render()
}

// PrintTeamList prints each team with its roster size.
func PrintTeamList(w io.Writer, teams []model.Team) {
	table := newTable(w)
	table.Header("TEAM", "SKATERS", "D", "F", "G")
	for _, t := range teams {
		var d, f, g int
		for i := range t.Roster {
			p := &t.Roster[i]
			switch {
			case p.IsGoalie():
				g++
			case p.NormalizedPosition() == model.PosDefense:
				d++
			case p.IsForward():
				f++
			}
		}
		table.Append(t.Name, strconv.Itoa(len(t.Roster)), strconv.Itoa(d), strconv.Itoa(f), strconv.Itoa(g))
	}
	table.Render()
}

// PrintEfficiencyTable lists players by takeaway efficiency.
func PrintEfficiencyTable(w io.Writer, players []*model.Player) {
	table := newTable(w)
	table.Header("#", "NAME", "TEAM", "POS", "TK", "GV", "EFF")
	for i, p := range players {
		table.Append(
			strconv.Itoa(i+1),
			p.Name,
			p.Team,
			p.NormalizedPosition(),
			strconv.Itoa(p.Takeaways),
			strconv.Itoa(p.Giveaways),
			fmt.Sprintf("%.3f", p.TakeawayEfficiency),
		)
	}
	table.Render()
}

// PrintRawTable prints query results as-is.
func PrintRawTable(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}
