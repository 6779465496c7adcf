package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/layout"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

// ColorCollision marks agent/obstacle contacts.
var ColorCollision = color.NRGBA{R: 255, G: 80, B: 80, A: 220}

// Collision draws a pulsing ring between the two bodies of a collision.
func Collision(gtx layout.Context, c check.Collision, camera *interact.Camera) {
	mid := c.Agent.Add(c.Other).Scale(0.5)
	x, y := camera.WorldToScreen(mid.X, mid.Y)

	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.3 + 0.7)
	radius := camera.Zoom * 0.8 * pulse
	CircleOutline(gtx, x, y, radius, ColorCollision, max(2, camera.Zoom*0.08))

	inner := ColorCollision
	inner.A = 120
	FilledCircle(gtx, x, y, radius*0.3, inner)
}

// Collisions draws every collision in cs.
func Collisions(gtx layout.Context, cs []check.Collision, camera *interact.Camera) {
	for _, c := range cs {
		Collision(gtx, c, camera)
	}
}
