// Package render draws scenario frames with gonum/plot.
//
// An Animation is built once from a scenario and a render config and is
// read-only afterwards, so frames can be rendered from several goroutines.
package render

import (
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/elektrokombinacija/gridpath/internal/config"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

const dpi = 96

// axisMargin approximates the space taken by tick labels around the data area.
const axisMargin = 36 // pixels

var ErrFrameIndex = errors.New("frame index out of range")

// Animation is the immutable rendering context of one scenario.
type Animation struct {
	sc    *core.Scenario
	cfg   config.Render
	times []float64
}

// NewAnimation samples the frame times over [0, Duration+Tail].
func NewAnimation(sc *core.Scenario, cfg config.Render) (*Animation, error) {
	if sc == nil {
		return nil, errors.New("nil scenario")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Animation{
		sc:    sc,
		cfg:   cfg,
		times: core.Span(0, sc.Duration+cfg.Tail, cfg.Frames),
	}, nil
}

func (a *Animation) Scenario() *core.Scenario { return a.sc }

func (a *Animation) Config() config.Render { return a.cfg }

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.times) }

// Times returns a copy of the frame times.
func (a *Animation) Times() []float64 {
	return append([]float64(nil), a.times...)
}

// Time returns the time of frame i.
func (a *Animation) Time(i int) float64 { return a.times[i] }

// End returns the last frame time.
func (a *Animation) End() float64 { return a.sc.Duration + a.cfg.Tail }

// Size returns the frame size in pixels.
func (a *Animation) Size() (w, h int) { return a.cfg.Width, a.cfg.Height }

// Plot builds the plot of the scene at time t.
func (a *Animation) Plot(t float64) (*plot.Plot, error) {
	sc, cfg := a.sc, a.cfg

	p := plot.New()
	p.BackgroundColor = cfg.Colors.Free
	p.X.Padding, p.Y.Padding = 0, 0
	p.X.Tick.Marker = newCellTicker(sc.Width)
	p.Y.Tick.Marker = newCellTicker(sc.Height)
	// row 0 at the top
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	p.Add(cells{grid: sc.Grid, free: cfg.Colors.Free, blocked: cfg.Colors.Blocked})
	p.Add(newBorders(sc.Width, sc.Height, cfg.Colors.Grid))

	radius := vg.Points(cfg.MarkerRadius)

	if cfg.ShowPath && sc.PathFound && len(sc.Path) > 1 {
		line, err := pathLine(sc.Path, cfg.Colors.Path)
		if err != nil {
			return nil, fmt.Errorf("path line: %w", err)
		}
		p.Add(line)
	}

	agent, obstacles := sc.Positions(t)
	if len(obstacles) > 0 {
		s, err := markers(xysOf(obstacles), cfg.Colors.Obstacle, radius)
		if err != nil {
			return nil, fmt.Errorf("obstacle markers: %w", err)
		}
		p.Add(s)
	}

	labels, err := endpointLabels(sc.Start, sc.Finish, cfg.Colors.Marks)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	p.Add(labels)

	s, err := markers(xysOf([]core.Vec{agent}), cfg.Colors.Agent, radius)
	if err != nil {
		return nil, fmt.Errorf("agent marker: %w", err)
	}
	p.Add(s)

	// markers may sit on the border; keep the map extent
	p.X.Min, p.X.Max = -0.5, float64(sc.Width)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(sc.Height)-0.5

	return p, nil
}

// Render draws the scene at time t into a new image.
func (a *Animation) Render(t float64) (*image.RGBA, error) {
	p, err := a.Plot(t)
	if err != nil {
		return nil, err
	}

	w, h := a.Size()
	canvas := vgimg.NewWith(
		vgimg.UseWH(pixels(w), pixels(h)),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(a.cfg.Colors.Free),
	)
	p.Draw(a.fit(draw.New(canvas)))

	img := toRGBA(canvas.Image())
	if a.cfg.Clock {
		DrawClock(img, t, a.cfg.Colors.Agent)
	}
	return img, nil
}

// Frame renders frame i.
func (a *Animation) Frame(i int) (*image.RGBA, error) {
	if i < 0 || i >= len(a.times) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameIndex, i, len(a.times))
	}
	return a.Render(a.times[i])
}

// fit crops c so that map cells come out square.
func (a *Animation) fit(c draw.Canvas) draw.Canvas {
	margin := pixels(axisMargin)
	cw := c.Max.X - c.Min.X - margin
	ch := c.Max.Y - c.Min.Y - margin
	if cw <= 0 || ch <= 0 {
		return c
	}

	aspect := vg.Length(a.sc.Width) / vg.Length(a.sc.Height)
	if cw/ch > aspect {
		pad := (cw - ch*aspect) / 2
		return draw.Crop(c, pad, -pad, 0, 0)
	}
	pad := (ch - cw/aspect) / 2
	return draw.Crop(c, 0, 0, pad, -pad)
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(rgba, rgba.Bounds(), img, b.Min, stddraw.Src)
	return rgba
}
