package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Toolbar provides playback control buttons.
type Toolbar struct {
	state *state.State
	title string

	playBtn      widget.Clickable
	resetBtn     widget.Clickable
	stepFwdBtn   widget.Clickable
	stepBackBtn  widget.Clickable
	speedUpBtn   widget.Clickable
	speedDownBtn widget.Clickable
	loopBtn      widget.Clickable
	fitBtn       widget.Clickable

	// OnFit is called when the fit button is clicked.
	OnFit func()
}

// NewToolbar creates a new toolbar showing title on the right.
func NewToolbar(st *state.State, title string) *Toolbar {
	return &Toolbar{
		state: st,
		title: title,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutPlaybackControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSpeedControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.fitBtn, "fit", false)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 13, t.title)
				label.Color = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
				return label.Layout(gtx)
			}),
		)
	})
}

func (t *Toolbar) layoutPlaybackControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	play := ">"
	if t.state.Playback.Playing {
		play = "||"
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.stepBackBtn, "|<", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.playBtn, play, false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.stepFwdBtn, ">|", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.resetBtn, "[]", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.loopBtn, "loop", t.state.Playback.Loop)
		}),
	)
}

func (t *Toolbar) layoutSpeedControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.speedDownBtn, "-", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.speedUpBtn, "+", false)
		}),
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = min(bg.R+15, 255)
		bg.G = min(bg.G+15, 255)
		bg.B = min(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 32, Y: 28}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, text)
						label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						return label.Layout(gtx)
					})
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	pb := t.state.Playback
	for t.playBtn.Clicked(gtx) {
		pb.TogglePlay()
	}
	for t.resetBtn.Clicked(gtx) {
		pb.Reset()
	}
	for t.stepFwdBtn.Clicked(gtx) {
		pb.StepForward()
	}
	for t.stepBackBtn.Clicked(gtx) {
		pb.StepBack()
	}
	for t.speedUpBtn.Clicked(gtx) {
		pb.SpeedUp()
	}
	for t.speedDownBtn.Clicked(gtx) {
		pb.SlowDown()
	}
	for t.loopBtn.Clicked(gtx) {
		pb.ToggleLoop()
	}
	for t.fitBtn.Clicked(gtx) {
		if t.OnFit != nil {
			t.OnFit()
		}
	}
}
