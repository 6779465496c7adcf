package check

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Clearance returns, for each time, the distance from the agent to the
// nearest existing obstacle, or +Inf when the agent is not moving along its
// path or no obstacle exists at that time.
func Clearance(sc *core.Scenario, times []float64, opts Options) []float64 {
	out := make([]float64, len(times))
	dists := make([]float64, 0, len(sc.Obstacles))

	for i, t := range times {
		out[i] = math.Inf(1)
		if t < sc.Path.Start() || t > sc.Path.End() {
			continue
		}
		agent := sc.Path.Sample(t)

		dists = dists[:0]
		for _, o := range sc.Obstacles {
			if !Active(o, t, opts.Persist) {
				continue
			}
			d := agent.Sub(o.Sample(t))
			dists = append(dists, math.Sqrt(d.Dot(d)))
		}
		if len(dists) > 0 {
			out[i] = floats.Min(dists)
		}
	}
	return out
}

// Finite returns the finite values of xs.
func Finite(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
