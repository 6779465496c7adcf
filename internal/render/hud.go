package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const hudPad = 6

// ClockLabel formats a playback time for the HUD.
func ClockLabel(t float64) string {
	return fmt.Sprintf("t = %.2f", t)
}

// DrawClock stamps the playback time in the top-left corner of img.
func DrawClock(img *image.RGBA, t float64, clr color.Color) {
	face := basicfont.Face7x13
	label := ClockLabel(t)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
	}
	width := d.MeasureString(label).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	b := img.Bounds()
	box := image.Rect(b.Min.X, b.Min.Y, b.Min.X+width+2*hudPad, b.Min.Y+height+2*hudPad)
	draw.Draw(img, box, image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}), image.Point{}, draw.Over)

	d.Dot = fixed.P(b.Min.X+hudPad, b.Min.Y+hudPad+m.Ascent.Ceil())
	d.DrawString(label)
}
