// Command pathvis animates a planned path through a grid with moving
// obstacles, either in a window or exported to a video file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/gridpath/internal/config"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/render"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
	"github.com/elektrokombinacija/gridpath/internal/video"
	"github.com/elektrokombinacija/gridpath/internal/vis"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

var errUsage = errors.New("input file is not specified")

// options are the parsed command line.
type options struct {
	input           string
	configPath      string
	out             string
	video           bool
	frames          int
	fps             int
	workers         int
	defaultDuration float64
	verbose         bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("pathvis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML render config (built-in defaults if empty)")
	fs.StringVar(&o.out, "out", "", "Export to this path instead of opening a window (.mp4, .gif, or a directory for PNG frames)")
	fs.BoolVar(&o.video, "video", false, "Export MP4 to <dir>/../videos/<name>.mp4")
	fs.IntVar(&o.frames, "frames", 0, "Override frame count")
	fs.IntVar(&o.fps, "fps", 0, "Override frames per second")
	fs.IntVar(&o.workers, "workers", 0, "Render workers (0 = config or NumCPU)")
	fs.Float64Var(&o.defaultDuration, "default-duration", 0, "Duration used when no path was found")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pathvis [flags] <scenario.xml>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() < 1 {
		return o, errUsage
	}
	o.input = fs.Arg(0)
	if o.video && o.out == "" {
		o.out = scenario.VideoPath(o.input, ".mp4")
	}
	return o, nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(o options) (config.Render, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.frames > 0 {
		cfg.Frames = o.frames
	}
	if o.fps > 0 {
		cfg.FPS = o.fps
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.defaultDuration > 0 {
		cfg.DefaultDuration = o.defaultDuration
	}
	return cfg, cfg.Validate()
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger.Init(o.verbose)

	cfg, err := loadConfig(o)
	if err != nil {
		logger.Log.WithError(err).Fatal("config")
	}

	sc, err := scenario.LoadWith(o.input, scenario.LoadOptions{DefaultDuration: cfg.DefaultDuration})
	if err != nil {
		logger.Log.WithError(err).Fatal("load scenario")
	}
	if !sc.PathFound {
		logger.Log.WithField("file", o.input).Warn("no path in file, showing the agent at its start")
	}

	if o.out != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := export(ctx, sc, cfg, o.out); err != nil {
			logger.Log.WithError(err).Error("export failed")
			stop()
			os.Exit(1)
		}
		return
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("pathvis - "+scenario.Stem(o.input)),
			app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
		)

		application := vis.NewApp(state.NewState(sc, cfg), scenario.Stem(o.input))
		if err := application.Run(window); err != nil {
			logger.Log.WithError(err).Fatal("window")
		}
		os.Exit(0)
	}()
	app.Main()
}

// export renders every frame of the animation into out.
func export(ctx context.Context, sc *core.Scenario, cfg config.Render, out string) error {
	anim, err := render.NewAnimation(sc, cfg)
	if err != nil {
		return err
	}

	w, h := anim.Size()
	sink, err := video.NewSink(ctx, out, w, h, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := video.Export(ctx, anim, sink, cfg.NumWorkers()); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"out":     out,
		"frames":  anim.Len(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("export done")
	return nil
}
