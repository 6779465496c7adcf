package scenario

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

// DefaultDuration is the animation length used when no path was found.
const DefaultDuration = 100.0

// Load errors. Returned errors wrap one of these.
var (
	ErrMissingField  = errors.New("missing field")
	ErrBadGrid       = errors.New("malformed grid")
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrBadTrajectory = errors.New("malformed trajectory")
)

// LoadOptions tunes how a scenario is completed.
type LoadOptions struct {
	// DefaultDuration replaces the path duration when the file has no path.
	DefaultDuration float64
}

// DefaultLoadOptions returns the options used by Load.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{DefaultDuration: DefaultDuration}
}

// Load reads a scenario file with default options.
func Load(path string) (*core.Scenario, error) {
	return LoadWith(path, DefaultLoadOptions())
}

// LoadWith reads a scenario file.
func LoadWith(path string, opts LoadOptions) (*core.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"file":      path,
		"size":      fmt.Sprintf("%dx%d", sc.Width, sc.Height),
		"obstacles": len(sc.Obstacles),
		"points":    len(sc.Path),
		"duration":  sc.Duration,
	}).Debug("scenario loaded")
	return sc, nil
}

// Decode parses a scenario document.
//
// When the document has no path (no log, no path element, no points, or a
// zero path length) the agent gets a single point at the start cell at time
// 0, PathFound is false and Duration is opts.DefaultDuration. Otherwise
// Duration is the summary path length if positive, else the last path time.
func Decode(r io.Reader, opts LoadOptions) (*core.Scenario, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	sc, err := decodeMap(&doc.Map)
	if err != nil {
		return nil, err
	}

	if doc.Options != nil && doc.Options.HWeight != nil {
		sc.HWeight = *doc.Options.HWeight
	}

	var pathPoints []pointElem
	zeroLength := false
	if doc.Log != nil {
		if doc.Log.Summary != nil {
			sum, err := decodeSummary(doc.Log.Summary)
			if err != nil {
				return nil, err
			}
			sc.Summary = sum
			zeroLength = doc.Log.Summary.PathLength != "" && sum.PathLength == 0
		}
		if doc.Log.Path != nil {
			pathPoints = doc.Log.Path.Points
		}
	}

	if len(pathPoints) == 0 || zeroLength {
		if len(pathPoints) > 0 {
			logger.Log.Warn("summary reports zero path length, ignoring path points")
		}
		sc.Path = core.Trajectory{{X: sc.Start.X, Y: sc.Start.Y, T: 0}}
		sc.Duration = opts.DefaultDuration
		sc.PathFound = false
		return sc, nil
	}

	path, err := decodeTrajectory(pathPoints)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	sc.Path = path
	sc.PathFound = true
	sc.Duration = path.End()
	if sc.Summary != nil && sc.Summary.PathLength > 0 {
		sc.Duration = sc.Summary.PathLength
	}

	return sc, nil
}

func decodeMap(m *mapElem) (*core.Scenario, error) {
	fields := []struct {
		name string
		v    *int
	}{
		{"width", m.Width},
		{"height", m.Height},
		{"startx", m.StartX},
		{"starty", m.StartY},
		{"finishx", m.FinishX},
		{"finishy", m.FinishY},
	}
	for _, f := range fields {
		if f.v == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	sc := &core.Scenario{
		Width:  *m.Width,
		Height: *m.Height,
		Start:  core.Cell{X: *m.StartX - 1, Y: *m.StartY - 1},
		Finish: core.Cell{X: *m.FinishX - 1, Y: *m.FinishY - 1},
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadGrid, sc.Width, sc.Height)
	}

	grid, err := decodeGrid(m.Rows, sc.Width, sc.Height)
	if err != nil {
		return nil, err
	}
	sc.Grid = grid

	if !sc.InBounds(sc.Start) {
		return nil, fmt.Errorf("%w: start %d,%d", ErrOutOfBounds, sc.Start.X+1, sc.Start.Y+1)
	}
	if !sc.InBounds(sc.Finish) {
		return nil, fmt.Errorf("%w: finish %d,%d", ErrOutOfBounds, sc.Finish.X+1, sc.Finish.Y+1)
	}

	for i, o := range m.Obstacles {
		tr, err := decodeTrajectory(o.Points)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		sc.Obstacles = append(sc.Obstacles, tr)
	}

	return sc, nil
}

func decodeGrid(rows []string, width, height int) ([][]uint8, error) {
	if len(rows) != height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadGrid, len(rows), height)
	}

	grid := make([][]uint8, height)
	for y, row := range rows {
		cells := strings.Fields(row)
		if len(cells) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadGrid, y+1, len(cells), width)
		}
		grid[y] = make([]uint8, width)
		for x, c := range cells {
			switch c {
			case "0":
			case "1":
				grid[y][x] = 1
			default:
				return nil, fmt.Errorf("%w: row %d col %d: %q", ErrBadGrid, y+1, x+1, c)
			}
		}
	}
	return grid, nil
}

func decodeTrajectory(points []pointElem) (core.Trajectory, error) {
	tr := make(core.Trajectory, 0, len(points))
	for i, p := range points {
		x, errX := strconv.Atoi(strings.TrimSpace(p.X))
		y, errY := strconv.Atoi(strings.TrimSpace(p.Y))
		t, errT := strconv.ParseFloat(strings.TrimSpace(p.Time), 64)
		if err := errors.Join(errX, errY, errT); err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrBadTrajectory, i, err)
		}
		tr = append(tr, core.Point{X: x - 1, Y: y - 1, T: t})
	}

	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrajectory, err)
	}
	return tr, nil
}

func decodeSummary(s *summaryElem) (*core.Summary, error) {
	sum := &core.Summary{}

	var err error
	if s.PathLength != "" {
		if sum.PathLength, err = strconv.ParseFloat(strings.TrimSpace(s.PathLength), 64); err != nil {
			return nil, fmt.Errorf("summary pathlength: %w", err)
		}
	}
	if s.NumberOfSteps != "" {
		if sum.Steps, err = strconv.Atoi(strings.TrimSpace(s.NumberOfSteps)); err != nil {
			return nil, fmt.Errorf("summary numberofsteps: %w", err)
		}
	}
	if s.SearchTime != "" {
		if sum.SearchTime, err = strconv.ParseFloat(strings.TrimSpace(s.SearchTime), 64); err != nil {
			return nil, fmt.Errorf("summary searchtime: %w", err)
		}
	}
	return sum, nil
}
