// Package gen generates random scenario tasks on a fixed map: a start and a
// distant finish on free cells, and obstacles wandering along free straight
// runs of the grid.
package gen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
)

var (
	ErrNoFreeCell = errors.New("map has no free cell")
	ErrGaveUp     = errors.New("could not place obstacle")
)

// Params controls task generation.
type Params struct {
	Obstacles int
	// Disjoint rejects obstacle moves that collide with obstacles generated
	// earlier in the same task.
	Disjoint bool
	// Horizon is the time after which an obstacle stops; 0 means
	// width+height of the map.
	Horizon float64
	// MaxWait is the longest pause of an obstacle in place.
	MaxWait int
	// Attempts bounds the retries for a single move and for a whole
	// obstacle before giving up.
	Attempts int
}

// DefaultParams mirrors the classic benchmark generator.
func DefaultParams(obstacles int) Params {
	return Params{Obstacles: obstacles, MaxWait: 9, Attempts: 1000}
}

// Generator draws tasks from one map. Not safe for concurrent use.
type Generator struct {
	m    *scenario.Map
	rng  *rand.Rand
	free []core.Cell
}

// New returns a generator seeded with seed.
func New(m *scenario.Map, seed int64) (*Generator, error) {
	g := &Generator{m: m, rng: rand.New(rand.NewSource(seed))}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Free(x, y) {
				g.free = append(g.free, core.Cell{X: x, Y: y})
			}
		}
	}
	if len(g.free) == 0 {
		return nil, ErrNoFreeCell
	}
	return g, nil
}

// Task generates one scenario without a log section.
func (g *Generator) Task(p Params) (*core.Scenario, error) {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	if p.Horizon <= 0 {
		p.Horizon = float64(g.m.Width + g.m.Height)
	}

	start, finish := g.endpoints(p.Attempts)
	sc := &core.Scenario{
		Width:  g.m.Width,
		Height: g.m.Height,
		Start:  start,
		Finish: finish,
		Grid:   g.m.Grid,
	}

	for i := 0; i < p.Obstacles; i++ {
		var tr core.Trajectory
		var err error
		for try := 0; try < p.Attempts; try++ {
			if tr, err = g.obstacle(sc.Obstacles, p); err == nil {
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		sc.Obstacles = append(sc.Obstacles, tr)
	}

	sc.Path = core.Trajectory{{X: start.X, Y: start.Y}}
	return sc, nil
}

// endpoints picks a free start and a free finish at least max(width, height)
// steps away. If no such finish turns up, the farthest candidate is used.
func (g *Generator) endpoints(attempts int) (core.Cell, core.Cell) {
	start := g.randomFree()
	want := max(g.m.Width, g.m.Height)

	best, bestDist := start, -1
	for try := 0; try < attempts; try++ {
		c := g.randomFree()
		d := manhattan(start, c)
		if d >= want {
			return start, c
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}
	return start, best
}

// obstacle builds one trajectory starting at time 0 and running until the
// horizon, moving only along free straight runs.
func (g *Generator) obstacle(others []core.Trajectory, p Params) (core.Trajectory, error) {
	var cur core.Point
	placed := false
	for try := 0; try < p.Attempts; try++ {
		c := g.randomFree()
		cur = core.Point{X: c.X, Y: c.Y}
		if !p.Disjoint || !collides(core.Trajectory{cur}, others) {
			placed = true
			break
		}
	}
	if !placed {
		return nil, fmt.Errorf("%w: no clear start", ErrGaveUp)
	}

	tr := core.Trajectory{cur}
	for cur.T < p.Horizon {
		next, ok := g.step(cur, others, p)
		if !ok {
			return nil, fmt.Errorf("%w: stuck at %d,%d t=%g", ErrGaveUp, cur.X, cur.Y, cur.T)
		}
		tr = append(tr, next)
		cur = next
	}
	return tr, nil
}

// step draws the next waypoint: either a pause in place or a straight move
// along a free run on one axis, taking one time unit per cell.
func (g *Generator) step(cur core.Point, others []core.Trajectory, p Params) (core.Point, bool) {
	minX, maxX, minY, maxY := g.runs(cur.X, cur.Y)

	for try := 0; try < p.Attempts; try++ {
		next := cur
		if g.rng.Intn(2) == 1 {
			next.X = minX + g.rng.Intn(maxX-minX+1)
		} else {
			next.Y = minY + g.rng.Intn(maxY-minY+1)
		}

		dist := manhattan(cur.Cell(), next.Cell())
		if dist == 0 {
			if p.MaxWait <= 0 {
				continue
			}
			next.T = cur.T + float64(1+g.rng.Intn(p.MaxWait))
		} else {
			next.T = cur.T + float64(dist)
		}

		if p.Disjoint && collides(core.Trajectory{cur, next}, others) {
			continue
		}
		return next, true
	}
	return cur, false
}

// runs returns the free extent around (x, y) along each axis.
func (g *Generator) runs(x, y int) (minX, maxX, minY, maxY int) {
	minX, maxX, minY, maxY = x, x, y, y
	for g.m.Free(minX-1, y) {
		minX--
	}
	for g.m.Free(maxX+1, y) {
		maxX++
	}
	for g.m.Free(x, minY-1) {
		minY--
	}
	for g.m.Free(x, maxY+1) {
		maxY++
	}
	return
}

func (g *Generator) randomFree() core.Cell {
	return g.free[g.rng.Intn(len(g.free))]
}

func collides(segment core.Trajectory, others []core.Trajectory) bool {
	for _, o := range others {
		if _, _, hit := check.Pair(segment, o, check.DefaultOptions()); hit {
			return true
		}
	}
	return false
}

func manhattan(a, b core.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
