package gen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
)

const roomMap = `type octile
height 6
width 8
map
........
.@@@@@@.
........
..@..@..
..@..@..
........
`

func loadRoom(t *testing.T) *scenario.Map {
	t.Helper()
	m, err := scenario.ReadMovingAI(strings.NewReader(roomMap))
	require.NoError(t, err)
	return m
}

func TestTaskDeterministic(t *testing.T) {
	m := loadRoom(t)

	a, err := New(m, 42)
	require.NoError(t, err)
	b, err := New(m, 42)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ta, err := a.Task(DefaultParams(4))
		require.NoError(t, err)
		tb, err := b.Task(DefaultParams(4))
		require.NoError(t, err)
		if diff := cmp.Diff(ta, tb); diff != "" {
			t.Fatalf("task %d differs (-a +b):\n%s", i, diff)
		}
	}
}

func TestTaskShape(t *testing.T) {
	m := loadRoom(t)
	g, err := New(m, 7)
	require.NoError(t, err)

	sc, err := g.Task(DefaultParams(5))
	require.NoError(t, err)

	assert.Equal(t, 8, sc.Width)
	assert.Equal(t, 6, sc.Height)
	assert.True(t, m.Free(sc.Start.X, sc.Start.Y))
	assert.True(t, m.Free(sc.Finish.X, sc.Finish.Y))
	assert.GreaterOrEqual(t, manhattan(sc.Start, sc.Finish), min(8, farthest(m, sc.Start)))
	assert.False(t, sc.PathFound)
	assert.Nil(t, sc.Summary)
	require.Len(t, sc.Path, 1)
	assert.Equal(t, sc.Start, sc.Path[0].Cell())

	require.Len(t, sc.Obstacles, 5)
	horizon := float64(m.Width + m.Height)
	for i, o := range sc.Obstacles {
		require.NoError(t, o.Validate(), "obstacle %d", i)
		assert.Equal(t, 0.0, o.Start())
		assert.GreaterOrEqual(t, o.End(), horizon)
		for k, p := range o {
			assert.True(t, m.Free(p.X, p.Y), "obstacle %d point %d on a wall", i, k)
			if k == 0 {
				continue
			}
			assertStraightMove(t, m, o[k-1], p)
		}
	}
}

// assertStraightMove checks that b is reachable from a along one axis
// through free cells at one cell per time unit, or is a pause.
func assertStraightMove(t *testing.T, m *scenario.Map, a, b core.Point) {
	t.Helper()
	dist := manhattan(a.Cell(), b.Cell())
	if dist == 0 {
		assert.Greater(t, b.T, a.T, "pause must take time")
		assert.LessOrEqual(t, b.T-a.T, 9.0)
		return
	}
	require.True(t, a.X == b.X || a.Y == b.Y, "diagonal move %v -> %v", a, b)
	assert.Equal(t, float64(dist), b.T-a.T)

	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	for x, y := a.X, a.Y; x != b.X || y != b.Y; x, y = x+dx, y+dy {
		assert.True(t, m.Free(x, y), "move %v -> %v crosses a wall", a, b)
	}
}

func farthest(m *scenario.Map, from core.Cell) int {
	best := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Free(x, y) {
				best = max(best, manhattan(from, core.Cell{X: x, Y: y}))
			}
		}
	}
	return best
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestTaskDisjoint(t *testing.T) {
	m := loadRoom(t)
	g, err := New(m, 3)
	require.NoError(t, err)

	p := DefaultParams(2)
	p.Disjoint = true
	sc, err := g.Task(p)
	require.NoError(t, err)
	require.Len(t, sc.Obstacles, 2)

	_, _, hit := check.Pair(sc.Obstacles[1], sc.Obstacles[0], check.DefaultOptions())
	assert.False(t, hit)
}

func TestTaskCustomHorizon(t *testing.T) {
	g, err := New(loadRoom(t), 1)
	require.NoError(t, err)

	p := DefaultParams(1)
	p.Horizon = 3
	sc, err := g.Task(p)
	require.NoError(t, err)
	o := sc.Obstacles[0]
	assert.GreaterOrEqual(t, o.End(), 3.0)
	assert.Less(t, o[len(o)-2].T, 3.0)
}

func TestNewNoFreeCell(t *testing.T) {
	m := &scenario.Map{Width: 2, Height: 1, Grid: [][]uint8{{1, 1}}}
	_, err := New(m, 1)
	assert.ErrorIs(t, err, ErrNoFreeCell)
}

func TestStuckObstacleGivesUp(t *testing.T) {
	m := &scenario.Map{Width: 1, Height: 1, Grid: [][]uint8{{0}}}
	g, err := New(m, 1)
	require.NoError(t, err)

	p := DefaultParams(1)
	p.MaxWait = 0
	p.Attempts = 5
	_, err = g.Task(p)
	assert.ErrorIs(t, err, ErrGaveUp)
}

func TestFinishFallsBackToFarthest(t *testing.T) {
	m := &scenario.Map{Width: 3, Height: 1, Grid: [][]uint8{{0, 1, 0}}}
	g, err := New(m, 5)
	require.NoError(t, err)

	sc, err := g.Task(DefaultParams(0))
	require.NoError(t, err)
	assert.Equal(t, 2, manhattan(sc.Start, sc.Finish))
}
