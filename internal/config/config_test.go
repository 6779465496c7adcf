package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 400, cfg.Frames)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, 2.0, cfg.Tail)
	assert.Equal(t, 100.0, cfg.DefaultDuration)
	assert.True(t, cfg.Window.Loop)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
frames: 120
fps: 30
colors:
  agent: "#00ff00"
window:
  loop: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Frames)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, cfg.Colors.Agent.NRGBA())
	assert.False(t, cfg.Window.Loop)

	// untouched keys keep defaults
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, "libx264", cfg.FFmpeg.Codec)
	assert.Equal(t, Default().Colors.Obstacle, cfg.Colors.Obstacle)
	assert.Equal(t, 1.0, cfg.Window.Speed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "frames: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "fps: 0\nframes: -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "fps 0")
	assert.Contains(t, err.Error(), "frames -1")

	_, err = Load(writeConfig(t, "colors:\n  free: purple\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSaveLoad(t *testing.T) {
	cfg := Default()
	cfg.Frames = 10
	cfg.Colors.Path = MustParseColor("#12345678")

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		err  bool
	}{
		{"#ff0000", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"1f77b4", color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, false},
		{"#ff000066", color.NRGBA{R: 0xff, A: 0x66}, false},
		{"#ff00", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.NRGBA(), tt.in)
	}
	assert.Equal(t, "#ff0000", MustParseColor("#f00").String())
	assert.Equal(t, "#ff000066", MustParseColor("#ff000066").String())
}

func TestNumWorkers(t *testing.T) {
	cfg := Default()
	assert.Positive(t, cfg.NumWorkers())
	cfg.Workers = 3
	assert.Equal(t, 3, cfg.NumWorkers())
}
