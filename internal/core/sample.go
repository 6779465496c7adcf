package core

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Sample returns the interpolated position at time t.
//
// The entity moves at constant velocity between consecutive points. Before
// the first point it sits on the first point; from the last timestamp on it
// stays on the last point. The trajectory must not be empty.
func (tr Trajectory) Sample(t float64) Vec {
	i := sort.Search(len(tr), func(i int) bool { return tr[i].T >= t })

	if i == len(tr) {
		return vecOf(tr[len(tr)-1])
	}
	next := tr[i]
	if next.T == t || i == 0 {
		return vecOf(next)
	}

	prev := tr[i-1]
	k := (t - prev.T) / (next.T - prev.T)
	from := vecOf(prev)
	return from.Add(vecOf(next).Sub(from).Scale(k))
}

// SampleAll samples every trajectory at time t.
func SampleAll(trs []Trajectory, t float64) []Vec {
	out := make([]Vec, len(trs))
	for i, tr := range trs {
		out[i] = tr.Sample(t)
	}
	return out
}

// Span returns n evenly spaced times from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

func vecOf(p Point) Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}
