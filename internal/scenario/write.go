package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Encode writes sc as a scenario document.
//
// The map section is always written. The log section is written only when
// sc.Summary is set, with the path if PathFound.
func Encode(w io.Writer, sc *core.Scenario) error {
	doc := outDocument{document: document{Map: encodeMap(sc)}}

	if sc.HWeight != 0 {
		hw := sc.HWeight
		doc.Options = &optionsElem{HWeight: &hw}
	}

	if sc.Summary != nil {
		doc.Log = &logElem{Summary: &summaryElem{
			PathLength:    formatFloat(sc.Summary.PathLength),
			NumberOfSteps: strconv.Itoa(sc.Summary.Steps),
			SearchTime:    formatFloat(sc.Summary.SearchTime),
		}}
		if sc.PathFound {
			doc.Log.Path = &pathElem{Points: encodePoints(sc.Path)}
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Save writes sc to path.
func Save(path string, sc *core.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, sc); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func encodeMap(sc *core.Scenario) mapElem {
	oneBased := func(v int) *int {
		v++
		return &v
	}
	width, height := sc.Width, sc.Height

	m := mapElem{
		Width:   &width,
		Height:  &height,
		StartX:  oneBased(sc.Start.X),
		StartY:  oneBased(sc.Start.Y),
		FinishX: oneBased(sc.Finish.X),
		FinishY: oneBased(sc.Finish.Y),
	}

	for _, row := range sc.Grid {
		cells := make([]string, len(row))
		for x, v := range row {
			cells[x] = strconv.Itoa(int(v))
		}
		m.Rows = append(m.Rows, strings.Join(cells, " "))
	}

	for i, o := range sc.Obstacles {
		m.Obstacles = append(m.Obstacles, obstacleElem{
			ID:     strconv.Itoa(i),
			Points: encodePoints(o),
		})
	}
	return m
}

func encodePoints(tr core.Trajectory) []pointElem {
	points := make([]pointElem, len(tr))
	for i, p := range tr {
		points[i] = pointElem{
			X:    strconv.Itoa(p.X + 1),
			Y:    strconv.Itoa(p.Y + 1),
			Time: formatFloat(p.T),
		}
	}
	return points
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
