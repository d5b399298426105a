package linear

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func separableData() (*mat.Dense, []float64) {
	X := mat.NewDense(8, 2, []float64{
		0.0, 0.1,
		0.2, 0.0,
		0.1, 0.2,
		0.3, 0.1,
		1.0, 0.9,
		0.9, 1.1,
		1.1, 1.0,
		0.8, 0.8,
	})
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

func TestLogisticClassifierLearnsSeparableData(t *testing.T) {
	X, y := separableData()
	clf := NewLogisticClassifier(WithMaxIter(2000), WithLearningRate(0.5))

	if err := clf.SetData(X, y); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if err := clf.Fit(); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	scores, err := clf.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(scores) != 8 {
		t.Fatalf("Predict() returned %d scores, want 8", len(scores))
	}
	for i, s := range scores {
		want := y[i] == 1
		if got := s > 0.5; got != want {
			t.Errorf("sample %d: score %v misclassified", i, s)
		}
	}
}

func TestLogisticClassifierFullRetrain(t *testing.T) {
	X, y := separableData()
	clf := NewLogisticClassifier(WithMaxIter(200))

	if err := clf.SetData(X, y); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if err := clf.Fit(); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	first := append([]float64(nil), clf.Weights...)

	// Refit on the same data: a full retrain from zero weights must land on
	// the same parameters, not continue from the previous fit.
	if err := clf.Fit(); err != nil {
		t.Fatalf("second Fit() error = %v", err)
	}
	for j := range first {
		if first[j] != clf.Weights[j] {
			t.Fatalf("Fit() is not a full retrain: weights differ at %d (%v vs %v)",
				j, first[j], clf.Weights[j])
		}
	}
}

func TestLogisticClassifierNotFitted(t *testing.T) {
	clf := NewLogisticClassifier()
	X, _ := separableData()

	if _, err := clf.Predict(X); err == nil {
		t.Error("Predict() before Fit() expected error")
	}
	if err := clf.Save(t.TempDir()); err == nil {
		t.Error("Save() before Fit() expected error")
	}
}

func TestLogisticClassifierSaveLoad(t *testing.T) {
	X, y := separableData()
	clf := NewLogisticClassifier(WithMaxIter(200))
	if err := clf.SetData(X, y); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if err := clf.Fit(); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	dir := t.TempDir()
	if err := clf.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored := NewLogisticClassifier()
	if err := restored.Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want, err := clf.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	got, err := restored.Predict(X)
	if err != nil {
		t.Fatalf("restored Predict() error = %v", err)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("restored prediction %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLogisticClassifierValidation(t *testing.T) {
	clf := NewLogisticClassifier()

	X := mat.NewDense(2, 1, []float64{1, 2})
	if err := clf.SetData(X, []float64{0}); err == nil {
		t.Error("SetData() expected error on row/label mismatch")
	}
	if err := clf.SetData(X, []float64{0, 2}); err == nil {
		t.Error("SetData() expected error on non-binary labels")
	}
	if err := clf.Fit(); err == nil {
		t.Error("Fit() without SetData() expected error")
	}
}
