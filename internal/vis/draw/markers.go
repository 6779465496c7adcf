package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

// markerScale caps the marker radius at this fraction of a cell.
const markerScale = 0.35

// Marker draws an entity disc at a world position. radius is in dp and is
// capped at a share of the cell when zoomed out.
func Marker(gtx layout.Context, pos core.Vec, camera *interact.Camera, radius float32, col color.NRGBA) {
	x, y := camera.WorldToScreen(pos.X, pos.Y)
	r := min(float32(gtx.Dp(unit.Dp(radius))), camera.Zoom*markerScale)
	FilledCircle(gtx, x, y, r, col)
}

// Obstacles draws a marker for every obstacle position.
func Obstacles(gtx layout.Context, positions []core.Vec, camera *interact.Camera, radius float32, col color.NRGBA) {
	for _, p := range positions {
		Marker(gtx, p, camera, radius, col)
	}
}

// Agent draws the agent marker with a contrasting rim.
func Agent(gtx layout.Context, pos core.Vec, camera *interact.Camera, radius float32, col color.NRGBA) {
	Marker(gtx, pos, camera, radius, col)
	x, y := camera.WorldToScreen(pos.X, pos.Y)
	r := min(float32(gtx.Dp(unit.Dp(radius))), camera.Zoom*markerScale)
	CircleOutline(gtx, x, y, r, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, 1.5)
}

// Label draws text centred on a cell.
func Label(gtx layout.Context, th *material.Theme, cell core.Cell, text string, camera *interact.Camera, col color.NRGBA) {
	x, y := camera.WorldToScreen(float64(cell.X), float64(cell.Y))
	size := max(10, min(camera.Zoom*0.6, 28))

	lbl := material.Label(th, unit.Sp(size), text)
	lbl.Color = col

	macro := op.Record(gtx.Ops)
	c := gtx
	c.Constraints = layout.Constraints{Max: image.Pt(1<<12, 1<<12)}
	dims := lbl.Layout(c)
	call := macro.Stop()

	defer op.Offset(image.Pt(int(x)-dims.Size.X/2, int(y)-dims.Size.Y/2)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
