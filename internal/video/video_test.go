package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/config"
)

// stripes renders frame i as a solid image whose red channel is i.
type stripes struct {
	n      int
	failAt int
	calls  atomic.Int32
}

func (s *stripes) Len() int { return s.n }

func (s *stripes) Frame(i int) (*image.RGBA, error) {
	s.calls.Add(1)
	if i == s.failAt {
		return nil, errors.New("boom")
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for p := 0; p < len(img.Pix); p += 4 {
		img.Pix[p] = uint8(i)
		img.Pix[p+3] = 0xff
	}
	return img, nil
}

type recorder struct {
	frames []int
	closed bool
}

func (r *recorder) WriteFrame(img *image.RGBA) error {
	r.frames = append(r.frames, int(img.Pix[0]))
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func TestExportWritesInOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 64} {
		src := &stripes{n: 23, failAt: -1}
		rec := &recorder{}
		require.NoError(t, Export(context.Background(), src, rec, workers))

		want := make([]int, 23)
		for i := range want {
			want[i] = i
		}
		assert.Equal(t, want, rec.frames, "workers=%d", workers)
		assert.False(t, rec.closed, "Export must leave the sink open")
	}
}

func TestExportStopsOnError(t *testing.T) {
	src := &stripes{n: 40, failAt: 5}
	rec := &recorder{}
	err := Export(context.Background(), src, rec, 4)
	require.EqualError(t, err, "boom")
	assert.Equal(t, []int{0, 1, 2, 3}, rec.frames)
	assert.Less(t, int(src.calls.Load()), 40)
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	err := Export(ctx, &stripes{n: 10, failAt: -1}, rec, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.frames)
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	sink, err := NewPNGSink(dir)
	require.NoError(t, err)

	require.NoError(t, Export(context.Background(), &stripes{n: 3, failAt: -1}, sink, 2))
	require.NoError(t, sink.Close())

	for i := 0; i < 3; i++ {
		_, err := os.Stat(filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i)))
		assert.NoError(t, err)
	}
	assert.Equal(t, filepath.Join(dir, "frame_0012.png"), sink.FramePath(12))
}

func TestGIFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.gif")
	sink := NewGIFSink(path, 10)
	require.NoError(t, Export(context.Background(), &stripes{n: 5, failAt: -1}, sink, 2))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 5)
	assert.Equal(t, 10, anim.Delay[0])
	assert.Equal(t, image.Rect(0, 0, 4, 2), anim.Image[0].Bounds())

	assert.Error(t, NewGIFSink(path, 10).Close(), "empty gif")
	assert.Equal(t, 1, NewGIFSink(path, 60).delay)
}

func TestNewSinkByExtension(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	s, err := NewSink(context.Background(), filepath.Join(dir, "out.GIF"), 4, 2, cfg)
	require.NoError(t, err)
	assert.IsType(t, &GIFSink{}, s)

	s, err = NewSink(context.Background(), filepath.Join(dir, "frames"), 4, 2, cfg)
	require.NoError(t, err)
	assert.IsType(t, &PNGSink{}, s)

	s, err = NewSink(context.Background(), filepath.Join(dir, "frames.d")+string(filepath.Separator), 4, 2, cfg)
	require.NoError(t, err)
	assert.IsType(t, &PNGSink{}, s)

	cfg.FFmpeg.Binary = filepath.Join(dir, "no-such-ffmpeg")
	_, err = NewSink(context.Background(), filepath.Join(dir, "videos", "out.mp4"), 4, 2, cfg)
	assert.ErrorContains(t, err, "ffmpeg start error")
}

func TestFFmpegArgs(t *testing.T) {
	args := FFmpegArgs("out.mp4", 640, 480, 60, config.FFmpeg{Codec: "libx264", CRF: 23})
	assert.Equal(t, "out.mp4", args[len(args)-1])
	assert.Subset(t, args, []string{"-video_size", "640x480", "-framerate", "60", "-crf", "23", "-c:v", "libx264", "rgba"})

	args = FFmpegArgs("out.webm", 2, 2, 30, config.FFmpeg{Codec: "libvpx-vp9", CRF: 30})
	assert.NotContains(t, args, "-crf")
}

func TestFFmpegSinkRejectsWrongSize(t *testing.T) {
	s := &FFmpegSink{width: 4, height: 4}
	err := s.WriteFrame(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.Error(t, err)
}
