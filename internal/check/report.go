package check

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// reportSamples is the number of clearance samples in a report.
const reportSamples = 200

// Report renders an HTML line chart of the agent clearance over the path
// duration, with the collision threshold as a mark line.
func Report(w io.Writer, title string, sc *core.Scenario, o Options) error {
	times := core.Span(sc.Path.Start(), math.Max(sc.Path.End(), sc.Path.Start()), reportSamples)
	clearance := Clearance(sc, times, o)
	res := Scenario(sc, o)

	xs := make([]string, len(times))
	data := make([]opts.LineData, len(times))
	for i, t := range times {
		xs[i] = strconv.FormatFloat(t, 'f', 2, 64)
		if math.IsInf(clearance[i], 0) {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: clearance[i]}
	}

	verdict := "correct"
	if first, ok := res.First(); ok {
		verdict = fmt.Sprintf("wrong: obstacle %d at t=%.2f", first.Obstacle, first.Time)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s | obstacles=%d min clearance=%s", verdict, len(sc.Obstacles), formatClearance(res.MinClearance)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "clearance (cells)", Min: 0}),
	)
	line.SetXAxis(xs).
		AddSeries("clearance", data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "contact", YAxis: 2 * o.Radius}),
		)

	return line.Render(w)
}

// WriteReport renders Report into path.
func WriteReport(path, title string, sc *core.Scenario, o Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Report(f, title, sc, o); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}

func formatClearance(v float64) string {
	if math.IsInf(v, 1) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
