package cv

import (
	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// Method selects the fold-splitting scheme of a CrossValidation runner.
type Method int

const (
	// MethodStratified5 is 5-fold stratified cross-validation.
	MethodStratified5 Method = iota
	// MethodStratified10 is 10-fold stratified cross-validation.
	MethodStratified10
	// MethodLeaveOneOut holds out every sample once.
	MethodLeaveOneOut
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodStratified5:
		return "5-fold"
	case MethodStratified10:
		return "10-fold"
	case MethodLeaveOneOut:
		return "LOO"
	default:
		return "unknown"
	}
}

// Fold is one train/validation partition of the sample indices.
type Fold struct {
	TrainIndices []int
	ValIndices   []int
}

// Splitter produces a deterministic sequence of folds from a label vector.
// The validation sets of the folds cover every sample index exactly once.
type Splitter interface {
	Split(y []float64) ([]Fold, error)
}

// NewSplitter returns the Splitter for a Method.
func NewSplitter(m Method) Splitter {
	switch m {
	case MethodStratified10:
		return &StratifiedKFold{NSplits: 10}
	case MethodLeaveOneOut:
		return &LeaveOneOut{}
	default:
		return &StratifiedKFold{NSplits: 5}
	}
}

// StratifiedKFold splits samples into NSplits folds preserving the class
// proportions of the label vector. Splitting is deterministic: indices are
// taken in dataset order within each class.
type StratifiedKFold struct {
	NSplits int
}

// Split generates the stratified folds.
func (s *StratifiedKFold) Split(y []float64) ([]Fold, error) {
	n := len(y)
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if s.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", s.NSplits)
	}
	if s.NSplits > n {
		return nil, errors.NewValidationError("n_splits",
			"cannot exceed the number of samples", s.NSplits)
	}

	// Group sample indices by class, in encounter order.
	var classOrder []float64
	classIndices := make(map[float64][]int)
	for i, label := range y {
		if _, ok := classIndices[label]; !ok {
			classOrder = append(classOrder, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}
	for _, label := range classOrder {
		if len(classIndices[label]) < s.NSplits {
			return nil, errors.NewValidationError("n_splits",
				"a class has fewer samples than folds", s.NSplits)
		}
	}

	folds := make([]Fold, s.NSplits)

	// Distribute each class across the folds in contiguous chunks.
	for _, label := range classOrder {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / s.NSplits
		remainder := nClass % s.NSplits

		current := 0
		for i := 0; i < s.NSplits; i++ {
			size := foldSize
			if i < remainder {
				size++
			}
			folds[i].ValIndices = append(folds[i].ValIndices, indices[current:current+size]...)
			current += size
		}
	}

	// Train sets are the complements of the validation sets.
	for i := range folds {
		inVal := make(map[int]bool, len(folds[i].ValIndices))
		for _, idx := range folds[i].ValIndices {
			inVal[idx] = true
		}
		for j := 0; j < n; j++ {
			if !inVal[j] {
				folds[i].TrainIndices = append(folds[i].TrainIndices, j)
			}
		}
	}

	return folds, nil
}

// LeaveOneOut produces one fold per sample, each holding out a single
// sample.
type LeaveOneOut struct{}

// Split generates the leave-one-out folds.
func (l *LeaveOneOut) Split(y []float64) ([]Fold, error) {
	n := len(y)
	if n < 2 {
		return nil, errors.NewValidationError("n_samples",
			"leave-one-out needs at least two samples", n)
	}

	folds := make([]Fold, n)
	for i := 0; i < n; i++ {
		train := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				train = append(train, j)
			}
		}
		folds[i] = Fold{TrainIndices: train, ValIndices: []int{i}}
	}
	return folds, nil
}
