package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// cells fills every grid cell with the free or blocked color.
type cells struct {
	grid          [][]uint8
	free, blocked color.Color
}

// Plot implements plot.Plotter.
func (g cells) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	rect := func(x0, y0, x1, y1 float64) []vg.Point {
		return []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x1), Y: trY(y0)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x0), Y: trY(y1)},
		}
	}

	height := len(g.grid)
	if height == 0 {
		return
	}
	width := len(g.grid[0])
	c.FillPolygon(g.free, rect(-0.5, -0.5, float64(width)-0.5, float64(height)-0.5))

	for y, row := range g.grid {
		for x, v := range row {
			if v == 0 {
				continue
			}
			fx, fy := float64(x), float64(y)
			c.FillPolygon(g.blocked, rect(fx-0.5, fy-0.5, fx+0.5, fy+0.5))
		}
	}
}

// DataRange implements plot.DataRanger.
func (g cells) DataRange() (xmin, xmax, ymin, ymax float64) {
	h := len(g.grid)
	w := 0
	if h > 0 {
		w = len(g.grid[0])
	}
	return -0.5, float64(w) - 0.5, -0.5, float64(h) - 0.5
}

// borders strokes the dashed cell borders at minor tick positions.
type borders struct {
	width, height int
	xStep, yStep  int
	style         draw.LineStyle
}

func newBorders(width, height int, clr color.Color) borders {
	_, xMinor := TickSteps(width)
	_, yMinor := TickSteps(height)
	return borders{
		width:  width,
		height: height,
		xStep:  xMinor,
		yStep:  yMinor,
		style: draw.LineStyle{
			Color:  clr,
			Width:  vg.Points(0.5),
			Dashes: []vg.Length{vg.Points(3), vg.Points(2)},
		},
	}
}

// Plot implements plot.Plotter.
func (b borders) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	top, bottom := trY(-0.5), trY(float64(b.height)-0.5)
	left, right := trX(-0.5), trX(float64(b.width)-0.5)

	for _, x := range MinorTicks(b.width, b.xStep) {
		c.StrokeLine2(b.style, trX(x), top, trX(x), bottom)
	}
	for _, y := range MinorTicks(b.height, b.yStep) {
		c.StrokeLine2(b.style, left, trY(y), right, trY(y))
	}
}

func xysOf(vs []core.Vec) plotter.XYs {
	xys := make(plotter.XYs, len(vs))
	for i, v := range vs {
		xys[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return xys
}

func xysOfTrajectory(tr core.Trajectory) plotter.XYs {
	xys := make(plotter.XYs, len(tr))
	for i, p := range tr {
		xys[i] = plotter.XY{X: float64(p.X), Y: float64(p.Y)}
	}
	return xys
}

func markers(xys plotter.XYs, clr color.Color, radius vg.Length) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = draw.GlyphStyle{Color: clr, Radius: radius, Shape: draw.CircleGlyph{}}
	return s, nil
}

// endpointLabels draws "S" and "F" on the start and finish cells.
func endpointLabels(start, finish core.Cell, clr color.Color) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: float64(start.X), Y: float64(start.Y)},
			{X: float64(finish.X), Y: float64(finish.Y)},
		},
		Labels: []string{"S", "F"},
	})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Color = clr
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
		l.TextStyle[i].Font.Size = vg.Points(14)
	}
	return l, nil
}

func pathLine(path core.Trajectory, clr color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(xysOfTrajectory(path))
	if err != nil {
		return nil, err
	}
	line.Color = clr
	line.Width = vg.Points(1.5)
	return line, nil
}
