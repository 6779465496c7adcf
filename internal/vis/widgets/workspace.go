// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/draw"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// fitMargin is the screen margin kept around the grid when fitting.
const fitMargin = 24

// Workspace is the main 2D scenario view.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	sc := w.state.Scenario
	if !w.camera.Fitted {
		w.camera.FitGrid(sc.Width, sc.Height, float32(bounds.X), float32(bounds.Y), fitMargin)
	}
	w.handlePointerEvents(gtx)

	colors := w.state.Config.Colors
	draw.Cells(gtx, sc, w.camera, colors.Free.NRGBA(), colors.Blocked.NRGBA())
	draw.Borders(gtx, sc.Width, sc.Height, w.camera, colors.Grid.NRGBA())

	if w.state.Config.ShowPath && w.state.Scenario.PathFound {
		draw.PlannedPath(gtx, sc.Path, w.camera, colors.Path.NRGBA())
		draw.Trail(gtx, w.state.Trail(), w.camera, colors.Agent.NRGBA(), 3)
	}

	radius := float32(w.state.Config.MarkerRadius) * 2
	agent, obstacles := w.state.Positions()
	draw.Obstacles(gtx, obstacles, w.camera, radius, colors.Obstacle.NRGBA())

	draw.Label(gtx, th, sc.Start, "S", w.camera, colors.Marks.NRGBA())
	draw.Label(gtx, th, sc.Finish, "F", w.camera, colors.Marks.NRGBA())

	draw.Collisions(gtx, w.state.ActiveCollisions(), w.camera)
	draw.Agent(gtx, agent, w.camera, radius, colors.Agent.NRGBA())

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(pe)
		}
	}
}
