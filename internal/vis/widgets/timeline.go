package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/vis/draw"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

const (
	timelineHeight = 60
	timelineMargin = 20
)

// Timeline is a time scrubber widget. Collisions are marked on the track.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{
		state: st,
	}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	rect := image.Rect(0, 0, width, timelineHeight)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	trackWidth := width - 2*timelineMargin
	t.handlePointerEvents(gtx, trackWidth)

	trackY := timelineHeight / 2
	trackHeight := 6
	trackRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	pb := t.state.Playback
	fillWidth := int(float64(trackWidth) * pb.Progress())
	if fillWidth > 0 {
		fillRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	t.drawCollisionTicks(gtx, trackWidth, trackY)

	playheadX := timelineMargin + fillWidth
	playheadSize := 12
	playheadRect := image.Rect(playheadX-playheadSize/2, trackY-playheadSize/2, playheadX+playheadSize/2, trackY+playheadSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

func (t *Timeline) drawCollisionTicks(gtx layout.Context, trackWidth, trackY int) {
	maxTime := t.state.Playback.MaxTime
	if maxTime <= 0 {
		return
	}
	for _, c := range t.state.Collisions {
		x := timelineMargin + int(float64(trackWidth)*c.Time/maxTime)
		tick := image.Rect(x-1, trackY-8, x+1, trackY+8)
		paint.FillShape(gtx.Ops, draw.ColorCollision, clip.Rect(tick).Op())
	}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback

	current := material.Label(th, 12, fmt.Sprintf("t = %.2f", pb.CurrentTime))
	current.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	loop := ""
	if pb.Loop {
		loop = "  loop"
	}
	status := material.Label(th, 12, fmt.Sprintf("%.1fx%s  %s", pb.Speed, loop, verdict(t.state.Collisions)))
	status.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	end := material.Label(th, 12, fmt.Sprintf("%.2f", pb.MaxTime))
	end.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(timelineMargin), Right: unit.Dp(timelineMargin)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(current.Layout),
			layout.Rigid(status.Layout),
			layout.Rigid(end.Layout),
		)
	})
}

func verdict(cs []check.Collision) string {
	if len(cs) == 0 {
		return "correct"
	}
	return fmt.Sprintf("wrong: %d collision(s)", len(cs))
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, trackWidth)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, trackWidth)
			}
		case pointer.Release:
			t.dragging = false
		}
	}
}

func (t *Timeline) seek(screenX float32, trackWidth int) {
	if trackWidth <= 0 {
		return
	}
	progress := (float64(screenX) - timelineMargin) / float64(trackWidth)
	progress = min(max(progress, 0), 1)
	t.state.Playback.SetTime(progress * t.state.Playback.MaxTime)
}
