package plotting

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// DrawCurve renders one or more y-series against a shared x-axis and saves
// the figure to path. Each series gets a legend entry from names, which must
// be parallel to series. Every series must have the same length as x.
func DrawCurve(x []float64, series [][]float64, names []string, xlabel, ylabel, path string) error {
	if len(series) == 0 {
		return errors.NewValueError("DrawCurve", "no series to draw")
	}
	if len(names) != len(series) {
		return errors.NewDimensionError("DrawCurve", len(series), len(names), 0)
	}

	p := plot.New()
	p.Title.Text = ylabel + " vs " + xlabel
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	for i, ys := range series {
		if len(ys) != len(x) {
			return errors.NewDimensionError("DrawCurve", len(x), len(ys), 0)
		}
		pts := make(plotter.XYs, len(x))
		for j := range x {
			pts[j].X = x[j]
			pts[j].Y = ys[j]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return errors.Wrap(err, "DrawCurve")
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(names[i], line, points)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "DrawCurve: save")
	}
	return nil
}
