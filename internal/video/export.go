package video

import (
	"context"
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

// FrameSource renders frames by index. Frame must be safe for concurrent use.
type FrameSource interface {
	Len() int
	Frame(i int) (*image.RGBA, error)
}

// Export renders every frame of src with up to workers goroutines and writes
// them to sink in frame order. Frames are rendered in batches of workers so
// memory stays bounded. The sink is not closed.
func Export(ctx context.Context, src FrameSource, sink FrameSink, workers int) error {
	if workers < 1 {
		workers = 1
	}
	n := src.Len()
	log := logger.Log.WithFields(logrus.Fields{"frames": n, "workers": workers})
	log.Debug("export started")

	batch := make([]*image.RGBA, workers)
	for start := 0; start < n; start += workers {
		end := min(start+workers, n)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := src.Frame(i)
				if err != nil {
					return err
				}
				batch[i-start] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := sink.WriteFrame(batch[i-start]); err != nil {
				return err
			}
			batch[i-start] = nil
		}
		log.WithField("done", end).Debug("batch written")
	}

	log.Info("export finished")
	return nil
}
