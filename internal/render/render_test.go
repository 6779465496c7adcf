package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/config"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

func TestTickSteps(t *testing.T) {
	tests := []struct {
		extent       int
		major, minor int
	}{
		{5, 1, 1},
		{10, 1, 1},
		{11, 2, 1},
		{30, 5, 2},
		{64, 10, 5},
		{512, 100, 50},
		{20000, 1000, 500},
	}
	for _, tt := range tests {
		major, minor := TickSteps(tt.extent)
		if major != tt.major || minor != tt.minor {
			t.Errorf("TickSteps(%d) = %d, %d; want %d, %d", tt.extent, major, minor, tt.major, tt.minor)
		}
	}
}

func TestTickPositions(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10}, MajorTicks(12, 5))
	assert.Equal(t, []float64{-0.5, 0.5, 1.5, 2.5}, MinorTicks(3, 1))
	assert.Equal(t, []float64{-0.5, 1.5, 3.5}, MinorTicks(4, 2))

	ticks := newCellTicker(4).Ticks(-0.5, 3.5)
	var labels []string
	minor := 0
	for _, tk := range ticks {
		if tk.IsMinor() {
			minor++
			continue
		}
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"0", "1", "2", "3"}, labels)
	assert.Equal(t, 5, minor)
}

func testScenario() *core.Scenario {
	return &core.Scenario{
		Width:  4,
		Height: 3,
		Start:  core.Cell{X: 0, Y: 0},
		Finish: core.Cell{X: 3, Y: 2},
		Grid: [][]uint8{
			{0, 0, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		},
		Obstacles: []core.Trajectory{
			{{X: 3, Y: 0, T: 0}, {X: 0, Y: 0, T: 3}},
		},
		Path: core.Trajectory{
			{X: 0, Y: 0, T: 0},
			{X: 0, Y: 2, T: 2},
			{X: 3, Y: 2, T: 5},
		},
		Duration:  5,
		PathFound: true,
	}
}

func smallConfig() config.Render {
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 150
	cfg.Frames = 8
	return cfg
}

func TestNewAnimationTimes(t *testing.T) {
	a, err := NewAnimation(testScenario(), smallConfig())
	require.NoError(t, err)

	times := a.Times()
	require.Len(t, times, 8)
	assert.Equal(t, 0.0, times[0])
	assert.InDelta(t, 7.0, times[len(times)-1], 1e-12)
	assert.Equal(t, 7.0, a.End())
	for i := 1; i < len(times); i++ {
		assert.Greater(t, times[i], times[i-1])
	}

	times[0] = 42
	assert.Equal(t, 0.0, a.Time(0), "Times must return a copy")
}

func TestNewAnimationRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Frames = 0
	_, err := NewAnimation(testScenario(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = NewAnimation(nil, smallConfig())
	assert.Error(t, err)
}

func TestPlotAxes(t *testing.T) {
	a, err := NewAnimation(testScenario(), smallConfig())
	require.NoError(t, err)

	p, err := a.Plot(1)
	require.NoError(t, err)
	assert.Equal(t, -0.5, p.X.Min)
	assert.Equal(t, 3.5, p.X.Max)
	assert.Equal(t, -0.5, p.Y.Min)
	assert.Equal(t, 2.5, p.Y.Max)
	// row 0 on top
	assert.Greater(t, p.Y.Norm(0), p.Y.Norm(2))
}

func TestFrameRendersAtConfiguredSize(t *testing.T) {
	a, err := NewAnimation(testScenario(), smallConfig())
	require.NoError(t, err)

	first, err := a.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, 200, first.Bounds().Dx())
	assert.Equal(t, 150, first.Bounds().Dy())

	last, err := a.Frame(a.Len() - 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Pix, last.Pix, "agent and obstacle moved")

	_, err = a.Frame(a.Len())
	assert.ErrorIs(t, err, ErrFrameIndex)
}

func TestDrawClock(t *testing.T) {
	cfg := smallConfig()
	cfg.Clock = false
	a, err := NewAnimation(testScenario(), cfg)
	require.NoError(t, err)

	img, err := a.Render(0)
	require.NoError(t, err)
	before := append([]uint8(nil), img.Pix...)

	DrawClock(img, 1.5, color.Black)
	assert.NotEqual(t, before, img.Pix)
	assert.Equal(t, "t = 1.50", ClockLabel(1.5))
}
