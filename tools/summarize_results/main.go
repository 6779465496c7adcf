// Package main summarizes a directory of planner result files: it checks
// every path for collisions and aggregates search statistics per obstacle
// count.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

// Result stores the outcome recorded in a single result file.
type Result struct {
	Timestamp    string
	CommitHash   string
	GoVersion    string
	Instance     string
	GridSize     string
	Obstacles    int
	PathFound    bool
	Correct      bool
	PathLength   float64
	Steps        int
	SearchTime   float64
	MinClearance float64
}

// Group holds per-obstacle-count aggregated metrics.
type Group struct {
	Obstacles   int
	Runs        int
	Found       int
	Correct     int
	SearchTimes []float64
	Lengths     []float64
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// evaluate checks one loaded result file.
func evaluate(name string, sc *core.Scenario, opts check.Options) *Result {
	res := check.Scenario(sc, opts)
	r := &Result{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		GoVersion:    runtime.Version(),
		Instance:     name,
		GridSize:     fmt.Sprintf("%dx%d", sc.Width, sc.Height),
		Obstacles:    len(sc.Obstacles),
		PathFound:    sc.PathFound,
		Correct:      sc.PathFound && res.OK(),
		MinClearance: res.MinClearance,
	}
	if sc.Summary != nil {
		r.PathLength = sc.Summary.PathLength
		r.Steps = sc.Summary.Steps
		r.SearchTime = sc.Summary.SearchTime
	}
	return r
}

func writeCSV(results []*Result, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"timestamp", "commit_hash", "go_version", "instance", "grid_size",
		"obstacles", "path_found", "correct", "path_length", "steps",
		"search_time", "min_clearance",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		clearance := ""
		if !math.IsInf(r.MinClearance, 0) {
			clearance = strconv.FormatFloat(r.MinClearance, 'f', 4, 64)
		}
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.Instance, r.GridSize,
			strconv.Itoa(r.Obstacles), strconv.FormatBool(r.PathFound), strconv.FormatBool(r.Correct),
			fmt.Sprintf("%.3f", r.PathLength), strconv.Itoa(r.Steps),
			fmt.Sprintf("%.6f", r.SearchTime), clearance,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// aggregate groups results by obstacle count, ordered by count.
func aggregate(results []*Result) []*Group {
	groups := make(map[int]*Group)
	for _, r := range results {
		g, ok := groups[r.Obstacles]
		if !ok {
			g = &Group{Obstacles: r.Obstacles}
			groups[r.Obstacles] = g
		}
		g.Runs++
		if r.PathFound {
			g.Found++
			g.SearchTimes = append(g.SearchTimes, r.SearchTime)
			g.Lengths = append(g.Lengths, r.PathLength)
		}
		if r.Correct {
			g.Correct++
		}
	}

	out := make([]*Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Obstacles < out[j].Obstacles })
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func printSummary(w io.Writer, groups []*Group) {
	fmt.Fprintln(w, "\n=== RESULT SUMMARY ===")
	fmt.Fprintf(w, "%-10s %6s %6s %8s %14s %12s\n",
		"Obstacles", "Runs", "Found", "Correct", "AvgSearch(s)", "AvgLength")
	fmt.Fprintln(w, strings.Repeat("-", 61))

	for _, g := range groups {
		fmt.Fprintf(w, "%-10d %6d %6d %8d %14.4f %12.2f\n",
			g.Obstacles, g.Runs, g.Found, g.Correct, mean(g.SearchTimes), mean(g.Lengths))
	}
}

func main() {
	inputDir := flag.String("input", "results", "Directory containing result XML files")
	outputFile := flag.String("output", "evidence/results.csv", "Output CSV file")
	radius := flag.Float64("radius", check.DefaultOptions().Radius, "Body radius used by the collision check")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()
	logger.Init(*verbose)

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.xml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding result files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No result files found in %s\n", *inputDir)
		os.Exit(1)
	}
	sort.Strings(files)

	opts := check.DefaultOptions()
	opts.Radius = *radius
	commit := getGitCommit()

	var results []*Result
	for i, file := range files {
		sc, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}

		r := evaluate(scenario.Stem(file), sc, opts)
		r.CommitHash = commit
		results = append(results, r)

		if *verbose {
			fmt.Printf("[%d/%d] %s found=%t correct=%t\n", i+1, len(files), r.Instance, r.PathFound, r.Correct)
		} else {
			fmt.Printf("\r[%d/%d] Checking...", i+1, len(files))
		}
	}
	fmt.Println()

	f, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(results, f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(os.Stdout, aggregate(results))
}
