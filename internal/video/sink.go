// Package video writes rendered frames to ffmpeg, an animated GIF or a PNG
// sequence.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/gridpath/internal/config"
)

// FrameSink consumes frames in order.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// NewSink picks a sink from the output path: ".gif" writes an animated GIF,
// a path without extension (or ending in a separator) a PNG directory, and
// anything else is handed to ffmpeg.
func NewSink(ctx context.Context, path string, width, height int, cfg config.Render) (FrameSink, error) {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return NewPNGSink(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return NewGIFSink(path, cfg.FPS), nil
	case "":
		return NewPNGSink(path)
	default:
		return NewFFmpegSink(ctx, path, width, height, cfg.FPS, cfg.FFmpeg)
	}
}

// FFmpegSink streams raw RGBA frames into an ffmpeg process.
type FFmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
}

// FFmpegArgs builds the encoder command line.
func FFmpegArgs(path string, width, height, fps int, opts config.FFmpeg) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.Itoa(fps),
		"-i", "-",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", opts.Codec,
	}
	if opts.Codec == "libx264" || opts.Codec == "libx265" {
		args = append(args, "-crf", strconv.Itoa(opts.CRF), "-preset", "medium")
	}
	return append(args, path)
}

// NewFFmpegSink starts ffmpeg writing to path. The output directory is
// created if needed.
func NewFFmpegSink(ctx context.Context, path string, width, height, fps int, opts config.FFmpeg) (*FFmpegSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	binary := opts.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	s := &FFmpegSink{width: width, height: height}
	s.cmd = exec.CommandContext(ctx, binary, FFmpegArgs(path, width, height, fps, opts)...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (s *FFmpegSink) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame size %dx%d, want %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}
	if img.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(packed, packed.Bounds(), img, b.Min, draw.Src)
		img = packed
	}
	if _, err := s.stdin.Write(img.Pix); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

// Close ends the stream and waits for ffmpeg to finish.
func (s *FFmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

// GIFSink collects frames and writes an animated GIF on Close.
type GIFSink struct {
	path  string
	delay int // hundredths of a second
	anim  gif.GIF
}

func NewGIFSink(path string, fps int) *GIFSink {
	delay := 1
	if fps > 0 && 100/fps > 1 {
		delay = (100 + fps/2) / fps
	}
	return &GIFSink{path: path, delay: delay}
}

func (s *GIFSink) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	pal := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.Draw(pal, pal.Bounds(), img, b.Min, draw.Src)
	s.anim.Image = append(s.anim.Image, pal)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return fmt.Errorf("%s: no frames", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}

// PNGSink writes frame_0000.png, frame_0001.png, ... into a directory.
type PNGSink struct {
	dir string
	n   int
}

func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &PNGSink{dir: dir}, nil
}

// FramePath returns the file name of frame i.
func (s *PNGSink) FramePath(i int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%04d.png", i))
}

func (s *PNGSink) WriteFrame(img *image.RGBA) error {
	f, err := os.Create(s.FramePath(s.n))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	s.n++
	return f.Close()
}

func (s *PNGSink) Close() error { return nil }
