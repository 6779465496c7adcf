// Command pathcheck verifies that planned paths in scenario result files
// never touch a moving obstacle.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run checks every file named in args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opts := check.DefaultOptions()
	fset := flag.NewFlagSet("pathcheck", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Float64Var(&opts.Radius, "radius", opts.Radius, "Body radius of agent and obstacles, in cells")
	fset.BoolVar(&opts.Persist, "persist", false, "Obstacles keep blocking after their last waypoint")
	reportDir := fset.String("report", "", "Write <name>_clearance.html per file into this directory")
	verbose := fset.Bool("v", false, "Verbose logging")
	fset.Usage = func() {
		fmt.Fprintln(stderr, "usage: pathcheck [flags] <file-or-dir>...")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	logger.InitTo(stderr, *verbose)

	if fset.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: input file is not specified")
		return 2
	}
	if opts.Radius <= 0 {
		fmt.Fprintf(stderr, "Error: radius must be positive, got %g\n", opts.Radius)
		return 2
	}

	files, err := expand(fset.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *reportDir != "" {
		if err := os.MkdirAll(*reportDir, 0755); err != nil {
			fmt.Fprintf(stderr, "Error creating report directory: %v\n", err)
			return 1
		}
	}

	status := 0
	for _, path := range files {
		ok, err := checkFile(path, opts, *reportDir)
		switch {
		case err != nil:
			fmt.Fprintf(stdout, "%s\t%v\n", path, err)
			status = 1
		case ok:
			fmt.Fprintf(stdout, "%s\tcorrect\n", path)
		default:
			fmt.Fprintf(stdout, "%s\twrong\n", path)
			status = 1
		}
	}
	return status
}

func checkFile(path string, opts check.Options, reportDir string) (bool, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return false, err
	}

	res := check.Scenario(sc, opts)
	if first, hit := res.First(); hit {
		logger.Log.WithFields(logrus.Fields{
			"file":     path,
			"obstacle": first.Obstacle,
			"time":     first.Time,
			"agent":    fmt.Sprintf("(%.2f, %.2f)", first.Agent.X, first.Agent.Y),
			"other":    fmt.Sprintf("(%.2f, %.2f)", first.Other.X, first.Other.Y),
		}).Debug("collision")
	}

	if reportDir != "" {
		name := scenario.Stem(path)
		out := filepath.Join(reportDir, name+"_clearance.html")
		if err := check.WriteReport(out, name, sc, opts); err != nil {
			return false, err
		}
	}
	return res.OK(), nil
}

// expand replaces directories with the .xml files below them, sorted.
func expand(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Unreadable files are reported per file.
			files = append(files, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
