package selector

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/dataset"
)

func makeDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	// f_sep separates the classes cleanly, f_noise does not, f_weak is in
	// between.
	X := mat.NewDense(8, 3, []float64{
		// f_sep, f_noise, f_weak
		0.0, 0.5, 0.1,
		0.1, 0.9, 0.3,
		0.2, 0.4, 0.2,
		0.1, 0.8, 0.4,
		1.0, 0.6, 0.5,
		0.9, 0.3, 0.7,
		1.1, 0.7, 0.6,
		1.0, 0.5, 0.8,
	})
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	ds, err := dataset.New(X, y, []string{"f_sep", "f_noise", "f_weak"}, nil)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func TestFScoreSelectorRanksSeparation(t *testing.T) {
	ds := makeDataset(t)

	sel := NewFScoreSelector()
	sel.SetSelectedFeatureNumber(1)
	reduced, err := sel.Run(ds, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if reduced.NumFeatures() != 1 {
		t.Fatalf("NumFeatures() = %d, want 1", reduced.NumFeatures())
	}
	if reduced.FeatureNames[0] != "f_sep" {
		t.Errorf("top feature = %q, want %q", reduced.FeatureNames[0], "f_sep")
	}
	if reduced.NumSamples() != ds.NumSamples() {
		t.Errorf("NumSamples() = %d, want %d", reduced.NumSamples(), ds.NumSamples())
	}
}

func TestFScoreSelectorTopTwo(t *testing.T) {
	ds := makeDataset(t)

	sel := NewFScoreSelector()
	sel.SetSelectedFeatureNumber(2)
	reduced, err := sel.Run(ds, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := reduced.FeatureNames; got[0] != "f_sep" || got[1] != "f_weak" {
		t.Errorf("selected features = %v, want [f_sep f_weak]", got)
	}
}

func TestFScoreSelectorWritesSelection(t *testing.T) {
	ds := makeDataset(t)
	dir := filepath.Join(t.TempDir(), "feature_2")

	sel := NewFScoreSelector()
	sel.SetSelectedFeatureNumber(2)
	if _, err := sel.Run(ds, dir); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "selected_features.csv")); err != nil {
		t.Fatalf("selection file not written: %v", err)
	}
}

func TestFScoreSelectorValidation(t *testing.T) {
	ds := makeDataset(t)

	sel := NewFScoreSelector()
	sel.SetSelectedFeatureNumber(0)
	if _, err := sel.Run(ds, ""); err == nil {
		t.Error("Run() expected error for feature number 0")
	}
	sel.SetSelectedFeatureNumber(4)
	if _, err := sel.Run(ds, ""); err == nil {
		t.Error("Run() expected error for feature number above dataset width")
	}
}
