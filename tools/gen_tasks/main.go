// Package main generates random scenario tasks from MovingAI maps.
// Generation is deterministic for a given seed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/gridpath/internal/gen"
	"github.com/elektrokombinacija/gridpath/internal/scenario"
	"github.com/elektrokombinacija/gridpath/pkg/logger"
)

// ManifestEntry describes one generated task file.
type ManifestEntry struct {
	File      string `json:"file"`
	Map       string `json:"map"`
	Obstacles int    `json:"obstacles"`
	Task      int    `json:"task"`
}

// Manifest records how a task set was generated.
type Manifest struct {
	RunID     string          `json:"run_id"`
	Seed      int64           `json:"seed"`
	Disjoint  bool            `json:"disjoint"`
	MaxWait   int             `json:"max_wait"`
	Tasks     []ManifestEntry `json:"tasks"`
	Generated string          `json:"generated"`
}

func main() {
	maps := flag.String("maps", "", "Directory of MovingAI .map files, or a comma-separated list of files")
	outputDir := flag.String("output", "tasks", "Output directory")
	counts := flag.String("counts", "10,20,30", "Comma-separated obstacle counts")
	perCount := flag.Int("tasks", 5, "Tasks per map and obstacle count")
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	disjoint := flag.Bool("disjoint", false, "Keep obstacles from colliding with each other")
	maxWait := flag.Int("max-wait", 9, "Longest obstacle pause")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	logger.Init(*verbose)

	if *maps == "" {
		fmt.Fprintln(os.Stderr, "Error: -maps is required")
		flag.Usage()
		os.Exit(2)
	}
	obstacleCounts, err := parseCounts(*counts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -counts: %v\n", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	manifest := Manifest{
		RunID:     uuid.NewString(),
		Seed:      *seed,
		Disjoint:  *disjoint,
		MaxWait:   *maxWait,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	paths, err := mapFiles(*maps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing maps: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, path := range paths {
		m, err := scenario.LoadMovingAI(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading map %s: %v\n", path, err)
			failed = true
			continue
		}

		g, err := gen.New(m, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error preparing map %s: %v\n", m.Name, err)
			failed = true
			continue
		}

		for _, count := range obstacleCounts {
			params := gen.DefaultParams(count)
			params.Disjoint = *disjoint
			params.MaxWait = *maxWait

			for id := 0; id < *perCount; id++ {
				sc, err := g.Task(params)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error generating %s with %d obstacles: %v\n", m.Name, count, err)
					failed = true
					continue
				}

				name := fmt.Sprintf("%s_%d_%d.xml", m.Name, count, id)
				filename := filepath.Join(*outputDir, name)
				if err := scenario.Save(filename, sc); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", filename, err)
					failed = true
					continue
				}

				logger.Log.WithField("file", filename).Debug("task written")
				manifest.Tasks = append(manifest.Tasks, ManifestEntry{
					File:      name,
					Map:       m.Name,
					Obstacles: count,
					Task:      id,
				})
				fmt.Printf("Generated: %s (%dx%d grid, %d obstacles)\n", filename, m.Width, m.Height, count)
			}
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling manifest: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(*outputDir, "manifest.json"), data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
		os.Exit(1)
	}

	if failed {
		os.Exit(1)
	}
}

// mapFiles expands a directory into its .map files.
func mapFiles(arg string) ([]string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		paths, err := filepath.Glob(filepath.Join(arg, "*.map"))
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no .map files in %s", arg)
		}
		return paths, nil
	}

	var paths []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative count %d", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no counts in %q", s)
	}
	return out, nil
}
