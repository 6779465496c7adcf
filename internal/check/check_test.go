package check

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

func traj(pts ...core.Point) core.Trajectory { return core.Trajectory(pts) }

func TestPairHeadOnSwap(t *testing.T) {
	agent := traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 2, Y: 0, T: 2})
	obst := traj(core.Point{X: 2, Y: 0, T: 0}, core.Point{X: 0, Y: 0, T: 2})

	c, closest, hit := Pair(agent, obst, DefaultOptions())
	require.True(t, hit)
	assert.InDelta(t, 0.5, c.Time, 1e-6)
	assert.InDelta(t, 0.0, c.Closest, 1e-9)
	assert.InDelta(t, 0.0, closest, 1e-9)
	assert.InDelta(t, 0.5, c.Agent.X, 1e-6)
	assert.InDelta(t, 1.5, c.Other.X, 1e-6)
}

func TestPairParallelLanes(t *testing.T) {
	agent := traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 3, Y: 0, T: 3})
	obst := traj(core.Point{X: 0, Y: 1, T: 0}, core.Point{X: 3, Y: 1, T: 3})

	_, closest, hit := Pair(agent, obst, DefaultOptions())
	assert.False(t, hit, "adjacent lanes only touch")
	assert.InDelta(t, 1.0, closest, 1e-12)

	_, _, hit = Pair(agent, obst, Options{Radius: 0.6})
	assert.True(t, hit, "fat bodies overlap")
}

func TestPairWaitingAgentIsHit(t *testing.T) {
	agent := traj(core.Point{X: 1, Y: 0, T: 0}, core.Point{X: 1, Y: 0, T: 4})
	obst := traj(core.Point{X: 0, Y: 0, T: 1}, core.Point{X: 3, Y: 0, T: 4})

	c, _, hit := Pair(agent, obst, DefaultOptions())
	require.True(t, hit)
	assert.InDelta(t, 1.0, c.Time, 1e-3)
}

func TestPairPersist(t *testing.T) {
	agent := traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 4, Y: 0, T: 4})
	parked := traj(core.Point{X: 2, Y: 0, T: 0})

	_, closest, hit := Pair(agent, parked, DefaultOptions())
	assert.False(t, hit, "obstacle vanished after t=0")
	assert.Equal(t, 2.0, closest)

	c, _, hit := Pair(agent, parked, Options{Radius: 0.5, Persist: true})
	require.True(t, hit)
	assert.InDelta(t, 1.0, c.Time, 1e-6)
}

func TestPairSinglePointObstacleInsideSpan(t *testing.T) {
	agent := traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 4, Y: 0, T: 4})
	blink := traj(core.Point{X: 2, Y: 0, T: 2})

	c, _, hit := Pair(agent, blink, DefaultOptions())
	require.True(t, hit)
	assert.Equal(t, 2.0, c.Time)
}

func TestPairNoCommonWindow(t *testing.T) {
	agent := traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 2, Y: 0, T: 2})
	late := traj(core.Point{X: 2, Y: 0, T: 3}, core.Point{X: 0, Y: 0, T: 5})

	_, closest, hit := Pair(agent, late, DefaultOptions())
	assert.False(t, hit)
	assert.True(t, math.IsInf(closest, 1))
}

func swapScenario() *core.Scenario {
	return &core.Scenario{
		Width:  5,
		Height: 2,
		Grid:   [][]uint8{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}},
		Finish: core.Cell{X: 4, Y: 0},
		Path:   traj(core.Point{X: 0, Y: 0, T: 0}, core.Point{X: 4, Y: 0, T: 4}),
		Obstacles: []core.Trajectory{
			traj(core.Point{X: 0, Y: 1, T: 0}, core.Point{X: 4, Y: 1, T: 4}),
			traj(core.Point{X: 4, Y: 0, T: 2}, core.Point{X: 2, Y: 0, T: 4}),
			traj(core.Point{X: 4, Y: 0, T: 0}, core.Point{X: 2, Y: 0, T: 2}),
		},
		Duration:  4,
		PathFound: true,
	}
}

func TestScenarioOrdersCollisions(t *testing.T) {
	res := Scenario(swapScenario(), DefaultOptions())
	require.False(t, res.OK())
	require.Len(t, res.Collisions, 2)

	first, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, 2, first.Obstacle)
	assert.Equal(t, 1, res.Collisions[1].Obstacle)
	assert.Less(t, res.Collisions[0].Time, res.Collisions[1].Time)
	assert.InDelta(t, 0.0, res.MinClearance, 1e-9)
}

func TestScenarioClean(t *testing.T) {
	sc := swapScenario()
	sc.Obstacles = sc.Obstacles[:1]

	res := Scenario(sc, DefaultOptions())
	assert.True(t, res.OK())
	_, ok := res.First()
	assert.False(t, ok)
	assert.InDelta(t, 1.0, res.MinClearance, 1e-12)
}

func TestClearance(t *testing.T) {
	sc := swapScenario()
	sc.Obstacles = sc.Obstacles[:1]

	got := Clearance(sc, []float64{-1, 0, 2, 4, 5}, DefaultOptions())
	assert.True(t, math.IsInf(got[0], 1), "before the path starts")
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.InDelta(t, 1.0, got[2], 1e-12)
	assert.InDelta(t, 1.0, got[3], 1e-12)
	assert.True(t, math.IsInf(got[4], 1), "after the path ends")

	assert.Equal(t, []float64{1, 1, 1}, Finite(got))
}

func TestActive(t *testing.T) {
	tr := traj(core.Point{T: 1}, core.Point{T: 3})
	assert.False(t, Active(tr, 0.5, false))
	assert.True(t, Active(tr, 2, false))
	assert.False(t, Active(tr, 4, false))
	assert.True(t, Active(tr, 4, true))
	assert.False(t, Active(nil, 0, true))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "swap", swapScenario(), DefaultOptions()))
	html := buf.String()
	assert.Contains(t, html, "clearance")
	assert.Contains(t, html, "wrong: obstacle 2")

	path := filepath.Join(t.TempDir(), "swap_clearance.html")
	require.NoError(t, WriteReport(path, "swap", swapScenario(), DefaultOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
