package mccabe

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/miladjahani/Sxoptim/types"
)

// SavePNG writes the diagram to an image file.
func (p Projection) SavePNG(path, title string) error {
	plt := plot.New()
	plt.Title.Text = title
	if p.Provisional {
		plt.Title.Text += " (provisional)"
	}
	plt.X.Label.Text = "Aqueous Cu (g/L)"
	plt.Y.Label.Text = "Organic Cu (g/L)"
	plt.Add(plotter.NewGrid())

	err := plotutil.AddLines(plt,
		"Equilibrium", xySeries(p.EquilibriumCurve),
		"Operating line", xySeries(p.OperatingLine),
		"Stages", xySeries(p.StageSteps),
	)
	if err != nil {
		return fmt.Errorf("assemble diagram: %w", err)
	}
	return plt.Save(8*vg.Inch, 6*vg.Inch, path)
}

// xySeries adapts a point series to the plotter interface.
type xySeries []types.Point

func (s xySeries) Len() int                    { return len(s) }
func (s xySeries) XY(i int) (float64, float64) { return s[i].Aqueous, s[i].Organic }
