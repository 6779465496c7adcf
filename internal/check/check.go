// Package check verifies that a planned path keeps clear of every moving
// obstacle.
//
// Agent and obstacles are discs of the same radius moving at constant speed
// between waypoints. Between two consecutive breakpoints of a pair of
// trajectories their relative position is linear in time, so the closest
// approach on each interval has a closed form and no time sampling is
// involved.
package check

import (
	"math"
	"sort"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// eps absorbs rounding when bodies touch exactly.
const eps = 1e-9

// Options tunes the collision model.
type Options struct {
	// Radius of the agent and of every obstacle, in cells.
	Radius float64
	// Persist keeps obstacles on their last waypoint after their trajectory
	// ends. By default an obstacle only exists during its own time span.
	Persist bool
}

// DefaultOptions returns half-cell bodies that vanish after their last
// waypoint.
func DefaultOptions() Options {
	return Options{Radius: 0.5}
}

// Collision is the first contact between the agent and one obstacle.
type Collision struct {
	Obstacle int
	Time     float64 // first time the bodies overlap
	Closest  float64 // smallest centre distance on the colliding segment
	Agent    core.Vec
	Other    core.Vec
}

// Result of checking a scenario.
type Result struct {
	// Collisions holds the first collision with each obstacle, by time.
	Collisions []Collision
	// MinClearance is the smallest centre distance to any obstacle while
	// both exist, +Inf if they never coexist.
	MinClearance float64
}

// OK reports whether the path is collision free.
func (r Result) OK() bool { return len(r.Collisions) == 0 }

// First returns the earliest collision.
func (r Result) First() (Collision, bool) {
	if len(r.Collisions) == 0 {
		return Collision{}, false
	}
	return r.Collisions[0], true
}

// Scenario checks the agent path of sc against every obstacle.
func Scenario(sc *core.Scenario, opts Options) Result {
	res := Result{MinClearance: math.Inf(1)}
	for i, o := range sc.Obstacles {
		c, closest, hit := Pair(sc.Path, o, opts)
		res.MinClearance = math.Min(res.MinClearance, closest)
		if hit {
			c.Obstacle = i
			res.Collisions = append(res.Collisions, c)
		}
	}
	sort.SliceStable(res.Collisions, func(i, j int) bool {
		return res.Collisions[i].Time < res.Collisions[j].Time
	})
	return res
}

// Pair checks one obstacle against the agent. It returns the first
// collision, the closest approach over the shared window (+Inf when there
// is none) and whether they collide.
func Pair(agent, obstacle core.Trajectory, opts Options) (Collision, float64, bool) {
	lo, hi, ok := window(agent, obstacle, opts)
	if !ok {
		return Collision{}, math.Inf(1), false
	}

	limit := 2*opts.Radius - eps
	closest := math.Inf(1)
	var first Collision
	hit := false

	times := breakpoints(lo, hi, agent, obstacle)
	if len(times) == 1 {
		times = append(times, times[0])
	}
	for k := 1; k < len(times); k++ {
		t0, t1 := times[k-1], times[k]

		a0, o0 := agent.Sample(t0), obstacle.Sample(t0)
		a1, o1 := agent.Sample(t1), obstacle.Sample(t1)
		d0 := a0.Sub(o0)
		v := a1.Sub(o1).Sub(d0)

		s := closestParam(d0, v)
		dist := math.Sqrt(sq(d0.Add(v.Scale(s))))
		closest = math.Min(closest, dist)

		if hit || dist >= limit {
			continue
		}
		s = entryParam(d0, v, limit)
		t := t0 + s*(t1-t0)
		hit = true
		first = Collision{
			Time:    t,
			Closest: dist,
			Agent:   agent.Sample(t),
			Other:   obstacle.Sample(t),
		}
	}
	return first, closest, hit
}

// Active reports whether tr exists at time t.
func Active(tr core.Trajectory, t float64, persist bool) bool {
	return len(tr) > 0 && t >= tr.Start() && (persist || t <= tr.End())
}

// window intersects the agent span with the obstacle lifetime.
func window(agent, obstacle core.Trajectory, opts Options) (lo, hi float64, ok bool) {
	if len(agent) == 0 || len(obstacle) == 0 {
		return 0, 0, false
	}
	lo = math.Max(agent.Start(), obstacle.Start())
	hi = agent.End()
	if !opts.Persist {
		hi = math.Min(hi, obstacle.End())
	}
	return lo, hi, lo <= hi
}

// breakpoints returns lo, hi and every waypoint time strictly between them,
// sorted and deduplicated.
func breakpoints(lo, hi float64, trs ...core.Trajectory) []float64 {
	times := []float64{lo, hi}
	for _, tr := range trs {
		for _, p := range tr {
			if p.T > lo && p.T < hi {
				times = append(times, p.T)
			}
		}
	}
	sort.Float64s(times)

	out := times[:1]
	for _, t := range times[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}

// closestParam minimises |d0 + s*v| over s in [0, 1].
func closestParam(d0, v core.Vec) float64 {
	vv := v.Dot(v)
	if vv == 0 {
		return 0
	}
	return clamp(-d0.Dot(v)/vv, 0, 1)
}

// entryParam returns the smallest s in [0, 1] with |d0 + s*v| < limit,
// assuming one exists.
func entryParam(d0, v core.Vec, limit float64) float64 {
	c := sq(d0) - limit*limit
	if c < 0 {
		return 0
	}
	a := v.Dot(v)
	b := 2 * d0.Dot(v)
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return closestParam(d0, v)
	}
	return clamp((-b-math.Sqrt(disc))/(2*a), 0, 1)
}

func sq(v core.Vec) float64 { return v.Dot(v) }

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
