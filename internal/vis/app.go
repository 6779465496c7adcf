// Package vis implements the interactive Gio window for scenario playback.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
	"github.com/elektrokombinacija/gridpath/internal/vis/widgets"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

// App is the visualization application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	camera    *interact.Camera
}

// NewApp creates the application for st. title is shown in the toolbar.
func NewApp(st *state.State, title string) *App {
	camera := interact.NewCamera()
	toolbar := widgets.NewToolbar(st, title)
	toolbar.OnFit = camera.Reset

	return &App{
		state:     st,
		theme:     material.NewTheme(),
		workspace: widgets.NewWorkspace(st, camera),
		timeline:  widgets.NewTimeline(st),
		toolbar:   toolbar,
		camera:    camera,
	}
}

// Run starts the application event loop. It returns when the window is
// closed.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)
	focused := false

	if a.state.Config.Window.Loop {
		a.state.Playback.Play()
	}
	logger.Log.WithField("duration", a.state.Scenario.Duration).Debug("window opened")

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			event.Op(gtx.Ops, tag)
			if !focused {
				gtx.Execute(key.FocusCmd{Tag: tag})
				focused = true
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			// Continuous redraws during playback; collision rings pulse too.
			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			} else if len(a.state.ActiveCollisions()) > 0 {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameHome:
		pb.Reset()
	case key.NameUpArrow, "+":
		pb.SpeedUp()
	case key.NameDownArrow, "-":
		pb.SlowDown()
	case "L":
		pb.ToggleLoop()
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
