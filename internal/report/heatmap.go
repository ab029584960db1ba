package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// Rink geometry in feet, origin at centre ice.
const (
	rinkLength = 200.0
	rinkWidth  = 85.0
	cellLength = 10.0
	cellWidth  = 5.0

	heatCols = int(rinkLength / cellLength)
	heatRows = int(rinkWidth / cellWidth)
)

// heatRamp goes from no danger to the hottest cell.
const heatRamp = " .:-=+*#%@"

// Heatmap is expected goals summed per rink cell.
type Heatmap struct {
	Cells   [heatRows][heatCols]float64
	Max     float64
	Total   float64
	Shots   int
	Outside int
}

// BuildHeatmap buckets shots into 10x5 ft cells. Coordinates outside the rink
// are counted but not drawn.
func BuildHeatmap(shots []model.Shot) Heatmap {
	var h Heatmap
	for _, s := range shots {
		h.Shots++
		h.Total += s.XGoal
		nx := s.X + rinkLength/2
		ny := rinkWidth/2 - s.Y
		if nx < 0 || nx > rinkLength || ny < 0 || ny > rinkWidth {
			h.Outside++
			continue
		}
		col := min(int(nx/cellLength), heatCols-1)
		row := min(int(ny/cellWidth), heatRows-1)
		h.Cells[row][col] += s.XGoal
		h.Max = math.Max(h.Max, h.Cells[row][col])
	}
	return h
}

func glyph(v, maxV float64) byte {
	if v <= 0 || maxV <= 0 {
		return heatRamp[0]
	}
	i := int(math.Ceil(v / maxV * float64(len(heatRamp)-1)))
	return heatRamp[min(i, len(heatRamp)-1)]
}

// PrintShotHeatmap draws the shooter's expected goals over the rink.
func PrintShotHeatmap(w io.Writer, player string, shots []model.Shot) {
	if len(shots) == 0 {
		fmt.Fprintf(w, "No shots found for %s.\n", player)
		return
	}
	h := BuildHeatmap(shots)

	fmt.Fprintf(w, "\nShot map: %s\n", player)
	border := "+" + strings.Repeat("-", heatCols) + "+"
	fmt.Fprintln(w, border)
	line := make([]byte, heatCols)
	for r := 0; r < heatRows; r++ {
		for c := 0; c < heatCols; c++ {
			line[c] = glyph(h.Cells[r][c], h.Max)
			if line[c] == ' ' && c == heatCols/2 {
				line[c] = '|'
			}
		}
		fmt.Fprintf(w, "|%s|\n", line)
	}
	fmt.Fprintln(w, border)
	fmt.Fprintf(w, "shots %d  |  xG %.2f  |  hottest cell %.2f xG  |  scale %q\n",
		h.Shots, h.Total, h.Max, heatRamp)
	if h.Outside > 0 {
		fmt.Fprintf(w, "%d shot(s) outside the rink were not drawn\n", h.Outside)
	}
}
