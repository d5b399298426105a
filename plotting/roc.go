// Package plotting renders the evaluation artifacts of a cross-validation
// run: ROC curves for pooled predictions and metric-vs-feature-count curves
// for sweeps. Rendering is fire-and-forget; callers pass an output path and
// receive an error only when the figure cannot be produced or written.
package plotting

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/featsweep/metrics"
	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// DrawROC renders the ROC curve of pooled scores against binary labels and
// saves it to path. The AUC is reported in the legend, and the chance
// diagonal is drawn for reference.
func DrawROC(yScore, yTrue *mat.VecDense, title, path string) error {
	fpr, tpr, err := metrics.ROCCurve(yTrue, yScore)
	if err != nil {
		return errors.Wrap(err, "DrawROC")
	}
	auc, err := metrics.AUC(yTrue, yScore)
	if err != nil {
		return errors.Wrap(err, "DrawROC")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(fpr))
	for i := range fpr {
		pts[i].X = fpr[i]
		pts[i].Y = tpr[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "DrawROC")
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("AUC = %.3f", auc), line)
	p.Legend.Top = false

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "DrawROC")
	}
	diag.LineStyle.Dashes = plotutil.Dashes(1)
	diag.Color = plotutil.Color(1)
	p.Add(diag)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "DrawROC: save")
	}
	return nil
}
