// Package dataset provides the tabular data container consumed by the
// cross-validation harness: a numeric feature matrix paired with a binary
// label vector and optional feature/sample names.
package dataset

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// Dataset pairs a samples-by-features matrix with one binary label per
// sample. FeatureNames and SampleNames are optional; when present their
// lengths match the matrix dimensions.
type Dataset struct {
	X            *mat.Dense
	Y            []float64
	FeatureNames []string
	SampleNames  []string
}

// New creates a Dataset and validates that the matrix row count matches the
// label vector length, and that any provided names match the dimensions.
func New(X *mat.Dense, y []float64, featureNames, sampleNames []string) (*Dataset, error) {
	rows, cols := X.Dims()
	if rows != len(y) {
		return nil, errors.NewDimensionError("dataset.New", rows, len(y), 0)
	}
	if featureNames != nil && len(featureNames) != cols {
		return nil, errors.NewDimensionError("dataset.New", cols, len(featureNames), 1)
	}
	if sampleNames != nil && len(sampleNames) != rows {
		return nil, errors.NewDimensionError("dataset.New", rows, len(sampleNames), 0)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, errors.NewValueError("dataset.New",
				"labels must be binary (0 or 1), sample "+strconv.Itoa(i)+" is not")
		}
	}
	return &Dataset{
		X:            X,
		Y:            y,
		FeatureNames: featureNames,
		SampleNames:  sampleNames,
	}, nil
}

// NumSamples returns the number of rows.
func (d *Dataset) NumSamples() int {
	if d == nil || d.X == nil {
		return 0
	}
	rows, _ := d.X.Dims()
	return rows
}

// NumFeatures returns the number of columns.
func (d *Dataset) NumFeatures() int {
	if d == nil || d.X == nil {
		return 0
	}
	_, cols := d.X.Dims()
	return cols
}

// IsEmpty reports whether the dataset holds no samples. A nil Dataset is
// empty; an absent optional test set is modeled as nil, never as a shared
// empty value.
func (d *Dataset) IsEmpty() bool {
	return d.NumSamples() == 0
}

// Labels returns the label vector as a *mat.VecDense for metric functions.
func (d *Dataset) Labels() *mat.VecDense {
	return mat.NewVecDense(len(d.Y), append([]float64(nil), d.Y...))
}

// SelectFeatures returns a new Dataset restricted to the given column
// indices, in the given order. Labels and sample names are shared views of
// the originals; the matrix is copied.
func (d *Dataset) SelectFeatures(indices []int) (*Dataset, error) {
	rows, cols := d.X.Dims()
	sub := mat.NewDense(rows, len(indices), nil)
	var names []string
	if d.FeatureNames != nil {
		names = make([]string, len(indices))
	}
	for j, idx := range indices {
		if idx < 0 || idx >= cols {
			return nil, errors.NewValueError("dataset.SelectFeatures",
				"feature index "+strconv.Itoa(idx)+" out of range")
		}
		for i := 0; i < rows; i++ {
			sub.Set(i, j, d.X.At(i, idx))
		}
		if names != nil {
			names[j] = d.FeatureNames[idx]
		}
	}
	return &Dataset{
		X:            sub,
		Y:            d.Y,
		FeatureNames: names,
		SampleNames:  d.SampleNames,
	}, nil
}

// SelectFeaturesByName returns a new Dataset restricted to the named
// columns, in the given order. All names must exist in FeatureNames.
func (d *Dataset) SelectFeaturesByName(names []string) (*Dataset, error) {
	if d.FeatureNames == nil {
		return nil, errors.NewValueError("dataset.SelectFeaturesByName", "dataset has no feature names")
	}
	pos := make(map[string]int, len(d.FeatureNames))
	for i, n := range d.FeatureNames {
		pos[n] = i
	}
	indices := make([]int, len(names))
	for i, n := range names {
		idx, ok := pos[n]
		if !ok {
			return nil, errors.NewValueError("dataset.SelectFeaturesByName",
				"feature '"+n+"' not found")
		}
		indices[i] = idx
	}
	return d.SelectFeatures(indices)
}

// SubsetRows returns copies of the feature rows and labels at the given
// sample indices.
func (d *Dataset) SubsetRows(indices []int) (*mat.Dense, []float64) {
	_, cols := d.X.Dims()
	sub := mat.NewDense(len(indices), cols, nil)
	labels := make([]float64, len(indices))
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			sub.Set(i, j, d.X.At(idx, j))
		}
		labels[i] = d.Y[idx]
	}
	return sub, labels
}

