package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

// Cells paints every grid cell in the free or blocked colour. Cell (x, y)
// covers [x-0.5, x+0.5] x [y-0.5, y+0.5] in world units.
func Cells(gtx layout.Context, sc *core.Scenario, camera *interact.Camera, free, blocked color.NRGBA) {
	x0, y0 := camera.WorldToScreen(-0.5, -0.5)
	x1, y1 := camera.WorldToScreen(float64(sc.Width)-0.5, float64(sc.Height)-0.5)
	Rect(gtx, x0, y0, x1, y1, free)

	for y := 0; y < sc.Height; y++ {
		for x := 0; x < sc.Width; x++ {
			if !sc.Blocked(core.Cell{X: x, Y: y}) {
				continue
			}
			cx0, cy0 := camera.WorldToScreen(float64(x)-0.5, float64(y)-0.5)
			cx1, cy1 := camera.WorldToScreen(float64(x)+0.5, float64(y)+0.5)
			Rect(gtx, cx0, cy0, cx1, cy1, blocked)
		}
	}
}

// Borders draws dashed lines between cells. Lines are skipped when cells
// get too small to tell apart.
func Borders(gtx layout.Context, width, height int, camera *interact.Camera, col color.NRGBA) {
	if camera.Zoom < 6 {
		return
	}

	top, bottom := -0.5, float64(height)-0.5
	for x := 0; x <= width; x++ {
		wx := float64(x) - 0.5
		sx0, sy0 := camera.WorldToScreen(wx, top)
		sx1, sy1 := camera.WorldToScreen(wx, bottom)
		DashedSegment(gtx, sx0, sy0, sx1, sy1, 1, 4, 3, col)
	}

	left, right := -0.5, float64(width)-0.5
	for y := 0; y <= height; y++ {
		wy := float64(y) - 0.5
		sx0, sy0 := camera.WorldToScreen(left, wy)
		sx1, sy1 := camera.WorldToScreen(right, wy)
		DashedSegment(gtx, sx0, sy0, sx1, sy1, 1, 4, 3, col)
	}
}
