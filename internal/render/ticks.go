package render

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
)

// tickDeltas are the allowed tick spacings in cells.
var tickDeltas = []int{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}

// TickSteps picks the labelled (major) and cell-border (minor) spacing for an
// axis spanning extent cells: major is the smallest delta not below extent/10,
// minor the delta before it.
func TickSteps(extent int) (major, minor int) {
	target := float64(extent) / 10
	i := sort.Search(len(tickDeltas), func(i int) bool {
		return float64(tickDeltas[i]) >= target
	})
	if i == len(tickDeltas) {
		i--
	}
	if i == 0 {
		return tickDeltas[0], tickDeltas[0]
	}
	return tickDeltas[i], tickDeltas[i-1]
}

// MajorTicks returns 0, step, 2*step, ... below extent.
func MajorTicks(extent, step int) []float64 {
	var ticks []float64
	for v := 0; v < extent; v += step {
		ticks = append(ticks, float64(v))
	}
	return ticks
}

// MinorTicks returns -0.5, -0.5+step, ... below extent: the cell borders.
func MinorTicks(extent, step int) []float64 {
	var ticks []float64
	for v := -0.5; v < float64(extent); v += float64(step) {
		ticks = append(ticks, v)
	}
	return ticks
}

// cellTicker labels major ticks with cell indices.
type cellTicker struct {
	extent, major, minor int
}

func newCellTicker(extent int) cellTicker {
	major, minor := TickSteps(extent)
	return cellTicker{extent: extent, major: major, minor: minor}
}

// Ticks implements plot.Ticker.
func (ct cellTicker) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, v := range MajorTicks(ct.extent, ct.major) {
		if v >= min && v <= max {
			ticks = append(ticks, plot.Tick{Value: v, Label: strconv.Itoa(int(math.Round(v)))})
		}
	}
	for _, v := range MinorTicks(ct.extent, ct.minor) {
		if v >= min && v <= max {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}
