package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

// Polyline draws connected world points with a fixed screen width.
func Polyline(gtx layout.Context, pts []core.Vec, camera *interact.Camera, col color.NRGBA, width float32) {
	for i := 1; i < len(pts); i++ {
		x1, y1 := camera.WorldToScreen(pts[i-1].X, pts[i-1].Y)
		x2, y2 := camera.WorldToScreen(pts[i].X, pts[i].Y)
		Segment(gtx, x1, y1, x2, y2, width, col)
	}
}

// PlannedPath draws the whole trajectory dimmed.
func PlannedPath(gtx layout.Context, tr core.Trajectory, camera *interact.Camera, col color.NRGBA) {
	pts := make([]core.Vec, len(tr))
	for i, p := range tr {
		pts[i] = core.Vec{X: float64(p.X), Y: float64(p.Y)}
	}
	Polyline(gtx, pts, camera, col, 2)
}

// Trail draws the part of the path already travelled, fading towards the
// start.
func Trail(gtx layout.Context, history []core.Vec, camera *interact.Camera, base color.NRGBA, maxWidth float32) {
	n := len(history)
	for i := 1; i < n; i++ {
		col := base
		col.A = uint8(80 + float64(i)/float64(n)*175)
		w := maxWidth * (0.4 + 0.6*float32(i)/float32(n))

		x1, y1 := camera.WorldToScreen(history[i-1].X, history[i-1].Y)
		x2, y2 := camera.WorldToScreen(history[i].X, history[i].Y)
		Segment(gtx, x1, y1, x2, y2, w, col)
	}
}
