package mccabe

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	sxtypes "github.com/miladjahani/Sxoptim/types"
)

// Chart renders a projection as an HTML page.
type Chart struct {
	Projection
	Scenario string
}

// Render formats the diagram page.
func (c *Chart) Render(w io.Writer) error {
	subtitle := "Equilibrium curve, operating line and stage steps"
	if c.Provisional {
		subtitle += " (provisional: solver did not converge)"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("McCabe-Thiele diagram, scenario %s", c.Scenario),
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  "Aqueous Cu (g/L)",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Organic Cu (g/L)",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	line.AddSeries("Equilibrium", lineData(c.EquilibriumCurve))
	line.AddSeries("Operating line", lineData(c.OperatingLine))
	line.AddSeries("Stages", lineData(c.StageSteps))
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		charts.WithEmphasisOpts(opts.Emphasis{
			Label: &opts.Label{
				Show:     opts.Bool(true),
				Color:    "black",
				Position: "left",
			},
		}),
	)

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// Handler serves the diagram page.
func (c *Chart) Handler(w http.ResponseWriter, _ *http.Request) {
	c.Render(w)
}

// lineData converts a point series to XY chart data.
func lineData(pts []sxtypes.Point) []opts.LineData {
	items := make([]opts.LineData, len(pts))
	for i, p := range pts {
		items[i] = opts.LineData{Value: []interface{}{p.Aqueous, p.Organic}}
	}
	return items
}
