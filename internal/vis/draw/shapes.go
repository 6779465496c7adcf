// Package draw provides Gio rendering functions for the scenario view.
package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// FilledCircle draws a disc in screen coordinates.
func FilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	circle(&path, cx, cy, radius, 24)
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// CircleOutline draws a ring of the given stroke width.
func CircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, strokeWidth float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	circle(&path, cx, cy, radius, 32)
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: strokeWidth}.Op())
}

func circle(path *clip.Path, cx, cy, radius float32, segments int) {
	path.MoveTo(f32.Pt(cx+radius, cy))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		path.LineTo(f32.Pt(cx+radius*float32(math.Cos(angle)), cy+radius*float32(math.Sin(angle))))
	}
	path.Close()
}

// Segment draws a straight line of the given width.
func Segment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DashedSegment draws a line as dashes of length dash separated by gap.
func DashedSegment(gtx layout.Context, x1, y1, x2, y2, width, dash, gap float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 || dash <= 0 {
		return
	}
	ux, uy := dx/length, dy/length

	for s := float32(0); s < length; s += dash + gap {
		e := min(s+dash, length)
		Segment(gtx, x1+ux*s, y1+uy*s, x1+ux*e, y1+uy*e, width, col)
	}
}

// Rect fills an axis-aligned rectangle given by two corners.
func Rect(gtx layout.Context, x0, y0, x1, y1 float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x0, y0))
	path.LineTo(f32.Pt(x1, y0))
	path.LineTo(f32.Pt(x1, y1))
	path.LineTo(f32.Pt(x0, y1))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
