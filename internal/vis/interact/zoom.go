// Package interact handles user interactions like pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
)

// Zoom is expressed in screen pixels per grid cell.
const (
	MinZoom    = 2
	MaxZoom    = 400
	zoomFactor = 1.1
)

// Camera maps grid coordinates (cell units, cell centres on integers) to
// screen pixels.
type Camera struct {
	OffsetX float32 // Screen position of world origin
	OffsetY float32
	Zoom    float32

	// Fitted is false until the view has been fitted to a viewport. Reset
	// clears it so the next layout refits.
	Fitted bool

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera that will fit on first layout.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// Reset drops pan and zoom; the owner refits on the next frame.
func (c *Camera) Reset() {
	c.OffsetX, c.OffsetY = 0, 0
	c.Zoom = 1
	c.Fitted = false
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent pans on secondary/tertiary drag and zooms on scroll.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/zoomFactor, ev.Position.X, ev.Position.Y)
		case ev.Scroll.Y < 0:
			c.ZoomBy(zoomFactor, ev.Position.X, ev.Position.Y)
		}
	}
}

// Pan pans the camera by the given screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy zooms by a factor, keeping the world point under (centerX, centerY)
// in place.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)
	c.Zoom = clampZoom(c.Zoom * factor)

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
}

// CenterOn centers the camera on a world position.
func (c *Camera) CenterOn(worldX, worldY float64, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(worldX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldY)*c.Zoom
}

// FitGrid fits a width x height grid into the screen with a margin and
// marks the camera fitted.
func (c *Camera) FitGrid(width, height int, screenWidth, screenHeight, margin float32) {
	c.FitBounds(-0.5, -0.5, float64(width)-0.5, float64(height)-0.5, screenWidth, screenHeight, margin)
	c.Fitted = true
}

// FitBounds adjusts camera to fit the given world bounds.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenWidth - 2*margin) / float32(worldW)
	zoomY := (screenHeight - 2*margin) / float32(worldH)
	c.Zoom = clampZoom(min(zoomX, zoomY))

	c.CenterOn((minX+maxX)/2, (minY+maxY)/2, screenWidth, screenHeight)
}

func clampZoom(z float32) float32 {
	return min(max(z, MinZoom), MaxZoom)
}
