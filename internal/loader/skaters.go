// Package loader reads season skater summaries and shot logs into the
// in-memory roster model.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// Column positions in the season skater summary export.
const (
	colName              = 2
	colTeam              = 3
	colPosition          = 4
	colSituation         = 5
	colGamesPlayed       = 6
	colIceTimeSeconds    = 7
	colShifts            = 8
	colPoints            = 33
	colGoals             = 34
	colReboundGoals      = 36
	colPenalties         = 43
	colHits              = 46
	colTakeaways         = 47
	colGiveaways         = 48
	colHighDangerXGoals  = 54
	colBlockedShots      = 83
	colOnIceXGA          = 106
	colExpectedGoalsAgst = 134

	// minFields is the narrowest row that carries every column above.
	minFields = 138
)

// DefaultSituation is the equal-strength subset.
const DefaultSituation = "5on5"

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("csv file is empty")

// Stats counts what happened to each data row.
type Stats struct {
	Rows           int
	Short          int
	Malformed      int
	OtherSituation int
	Duplicates     int
	Players        int
	Teams          int
}

// Skipped is the number of rows that did not become players.
func (s Stats) Skipped() int {
	return s.Short + s.Malformed + s.OtherSituation + s.Duplicates
}

type options struct {
	situation string
	log       zerolog.Logger
}

// Option configures LoadTeams.
type Option func(*options)

// WithSituation keeps only rows of the given game situation.
func WithSituation(s string) Option {
	return func(o *options) {
		if s != "" {
			o.situation = s
		}
	}
}

// WithLogger receives skipped-row diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// LoadTeams parses a skater summary CSV. The first row is a header. Rows that
// are too short, belong to another situation, or repeat a team/name pair are
// skipped. Teams are returned sorted by name with rosters in file order, and
// every player carries its league-wide takeaway efficiency.
func LoadTeams(r io.Reader, opts ...Option) ([]model.Team, Stats, error) {
	o := options{situation: DefaultSituation, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var stats Stats
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, stats, ErrEmptyFile
		}
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	rosters := make(map[string][]model.Player)
	seen := make(map[string]struct{})
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				stats.Malformed++
				o.log.Debug().Err(err).Msg("skipping malformed row")
				continue
			}
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows, err)
		}
		if len(fields) < minFields {
			stats.Short++
			o.log.Debug().Int("row", stats.Rows).Int("fields", len(fields)).Msg("skipping short row")
			continue
		}
		if strings.TrimSpace(fields[colSituation]) != o.situation {
			stats.OtherSituation++
			continue
		}

		p := parsePlayer(fields)
		key := p.Team + "-" + p.Name
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			o.log.Debug().Str("team", p.Team).Str("player", p.Name).Msg("skipping duplicate player")
			continue
		}
		seen[key] = struct{}{}
		rosters[p.Team] = append(rosters[p.Team], p)
	}

	teams := make([]model.Team, 0, len(rosters))
	for name, roster := range rosters {
		teams = append(teams, model.Team{Name: name, Roster: roster})
		stats.Players += len(roster)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	stats.Teams = len(teams)

	ApplyTakeawayEfficiency(teams)

	o.log.Info().
		Int("teams", stats.Teams).
		Int("players", stats.Players).
		Int("skipped", stats.Skipped()).
		Str("situation", o.situation).
		Msg("loaded skater summary")
	return teams, stats, nil
}

func parsePlayer(f []string) model.Player {
	iceTime := parseFloat(f[colIceTimeSeconds]) / 60.0
	onIceXGA := parseFloat(f[colOnIceXGA])
	onIceXGA60 := 0.0
	if iceTime > 0 {
		onIceXGA60 = onIceXGA / iceTime
	}
	return model.Player{
		Name:                 strings.TrimSpace(f[colName]),
		Team:                 strings.TrimSpace(f[colTeam]),
		Position:             strings.TrimSpace(f[colPosition]),
		GamesPlayed:          parseInt(f[colGamesPlayed]),
		IceTime:              iceTime,
		Shifts:               parseInt(f[colShifts]),
		Penalties:            parseInt(f[colPenalties]),
		ExpectedGoalsAgainst: parseFloat(f[colExpectedGoalsAgst]),
		OnIceXGAPer60:        onIceXGA60,
		Hits:                 parseInt(f[colHits]),
		BlockedShots:         parseInt(f[colBlockedShots]),
		Takeaways:            parseInt(f[colTakeaways]),
		Giveaways:            parseInt(f[colGiveaways]),
		Goals:                parseInt(f[colGoals]),
		Points:               parseInt(f[colPoints]),
		ReboundGoals:         parseInt(f[colReboundGoals]),
		HighDangerXGoals:     parseFloat(f[colHighDangerXGoals]),
	}
}

// parseFloat returns 0 for anything that is not a number.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseInt truncates toward zero; counts are exported as floats ("12.0").
func parseInt(s string) int {
	return int(parseFloat(s))
}
