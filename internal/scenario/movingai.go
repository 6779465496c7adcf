package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Map is a bare occupancy grid read from a MovingAI benchmark file.
type Map struct {
	Name          string
	Width, Height int
	Grid          [][]uint8 // Grid[y][x], 1 = blocked
}

// ReadMovingAI parses the MovingAI .map format:
//
//	type octile
//	height H
//	width W
//	map
//	<H lines of W characters>
//
// '.' and 'G' are passable; every other terrain character is blocked.
func ReadMovingAI(r io.Reader) (*Map, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	m := &Map{}
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "map" {
			break
		}
		if len(fields) != 2 {
			continue
		}
		var err error
		switch fields[0] {
		case "height":
			m.Height, err = strconv.Atoi(fields[1])
		case "width":
			m.Width, err = strconv.Atoi(fields[1])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: header %q: %v", ErrBadGrid, sc.Text(), err)
		}
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrMissingField, m.Width, m.Height)
	}

	m.Grid = make([][]uint8, 0, m.Height)
	for len(m.Grid) < m.Height && sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if len(line) < m.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadGrid, len(m.Grid)+1, len(line), m.Width)
		}
		row := make([]uint8, m.Width)
		for x := 0; x < m.Width; x++ {
			if c := line[x]; c != '.' && c != 'G' {
				row[x] = 1
			}
		}
		m.Grid = append(m.Grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Grid) != m.Height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadGrid, len(m.Grid), m.Height)
	}
	return m, nil
}

// LoadMovingAI reads a .map file; Name is the file stem.
func LoadMovingAI(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadMovingAI(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = Stem(path)
	return m, nil
}

// Free reports whether (x, y) is on the map and passable.
func (m *Map) Free(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height && m.Grid[y][x] == 0
}
