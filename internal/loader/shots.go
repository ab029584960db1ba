package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// Shot log header names.
const (
	shotColShooter = "shooterName"
	shotColX       = "xCordAdjusted"
	shotColY       = "yCordAdjusted"
	shotColXGoal   = "xGoal"
)

// ErrMissingColumns is returned when a shot log lacks a required header.
var ErrMissingColumns = errors.New("required columns not found in csv")

// LoadShotsForPlayer reads a shot log and keeps the shots taken by player
// (trimmed, case-insensitive). Columns are located by header name. Empty
// input yields no shots and no error.
func LoadShotsForPlayer(r io.Reader, player string) ([]model.Shot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	cols := make([]int, 0, 4)
	for _, name := range []string{shotColShooter, shotColX, shotColY, shotColXGoal} {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, name)
		}
		cols = append(cols, i)
	}
	shooterIdx, xIdx, yIdx, xgIdx := cols[0], cols[1], cols[2], cols[3]
	widest := max(shooterIdx, xIdx, yIdx, xgIdx)
	want := strings.TrimSpace(player)

	var shots []model.Shot
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, fmt.Errorf("read shot: %w", err)
		}
		if len(rec) <= widest {
			continue
		}
		shooter := strings.TrimSpace(rec[shooterIdx])
		if !strings.EqualFold(shooter, want) {
			continue
		}
		shots = append(shots, model.Shot{
			X:       parseFloat(rec[xIdx]),
			Y:       parseFloat(rec[yIdx]),
			Shooter: shooter,
			XGoal:   parseFloat(rec[xgIdx]),
		})
	}
	return shots, nil
}
