// Package config holds render and playback settings loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Render configures frame rendering, export and the interactive window.
type Render struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Frames          int     `yaml:"frames"`
	FPS             int     `yaml:"fps"`
	Tail            float64 `yaml:"tail"` // seconds shown after the path ends
	DefaultDuration float64 `yaml:"default_duration"`
	Workers         int     `yaml:"workers"` // 0 = NumCPU
	Clock           bool    `yaml:"clock"`
	ShowPath        bool    `yaml:"show_path"`
	MarkerRadius    float64 `yaml:"marker_radius"` // points

	Colors Colors `yaml:"colors"`
	FFmpeg FFmpeg `yaml:"ffmpeg"`
	Window Window `yaml:"window"`
}

// Colors of the frame layers.
type Colors struct {
	Free     Color `yaml:"free"`
	Blocked  Color `yaml:"blocked"`
	Grid     Color `yaml:"grid"`
	Obstacle Color `yaml:"obstacle"`
	Agent    Color `yaml:"agent"`
	Marks    Color `yaml:"marks"` // start/finish labels
	Path     Color `yaml:"path"`
}

// FFmpeg encoder settings.
type FFmpeg struct {
	Binary string `yaml:"binary"`
	Codec  string `yaml:"codec"`
	CRF    int    `yaml:"crf"`
}

// Window settings for interactive playback.
type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Loop   bool    `yaml:"loop"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() Render {
	return Render{
		Width:           1280,
		Height:          640,
		Frames:          400,
		FPS:             60,
		Tail:            2,
		DefaultDuration: 100,
		Clock:           true,
		ShowPath:        true,
		MarkerRadius:    4,
		Colors: Colors{
			Free:     MustParseColor("#ffffff"),
			Blocked:  MustParseColor("#000000"),
			Grid:     MustParseColor("#000000"),
			Obstacle: MustParseColor("#1f77b4"),
			Agent:    MustParseColor("#ff0000"),
			Marks:    MustParseColor("#ff0000"),
			Path:     MustParseColor("#ff000066"),
		},
		FFmpeg: FFmpeg{Binary: "ffmpeg", Codec: "libx264", CRF: 23},
		Window: Window{Width: 1280, Height: 800, Speed: 1, Loop: true},
	}
}

// Load reads a YAML file over Default and validates the result.
// Keys absent from the file keep their default value.
func Load(path string) (Render, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Render) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks value ranges.
func (c Render) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "frame size %dx%d", c.Width, c.Height)
	check(c.Frames > 0, "frames %d", c.Frames)
	check(c.FPS > 0, "fps %d", c.FPS)
	check(c.Tail >= 0, "tail %g", c.Tail)
	check(c.DefaultDuration > 0, "default_duration %g", c.DefaultDuration)
	check(c.Workers >= 0, "workers %d", c.Workers)
	check(c.MarkerRadius > 0, "marker_radius %g", c.MarkerRadius)
	check(c.FFmpeg.CRF >= 0 && c.FFmpeg.CRF <= 51, "ffmpeg.crf %d", c.FFmpeg.CRF)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Speed > 0, "window.speed %g", c.Window.Speed)

	return errors.Join(errs...)
}

// NumWorkers resolves Workers, with 0 meaning one per CPU.
func (c Render) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
