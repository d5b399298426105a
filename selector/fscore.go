// Package selector provides feature selection for the sweep runner. The
// FScoreSelector ranks features by the one-way ANOVA F statistic between
// the two label classes and keeps the top n.
package selector

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/featsweep/dataset"
	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// FScoreSelector selects the n features with the highest ANOVA F score.
// The selected feature count is set per sweep iteration via
// SetSelectedFeatureNumber.
type FScoreSelector struct {
	n int
}

// NewFScoreSelector creates a selector that keeps a single feature until
// SetSelectedFeatureNumber is called.
func NewFScoreSelector() *FScoreSelector {
	return &FScoreSelector{n: 1}
}

// SetSelectedFeatureNumber sets how many features the next Run keeps.
func (s *FScoreSelector) SetSelectedFeatureNumber(n int) {
	s.n = n
}

// SelectedFeatureNumber returns the configured feature count.
func (s *FScoreSelector) SelectedFeatureNumber() int {
	return s.n
}

// Run reduces ds to the top-n features by F score, ordered from highest to
// lowest score. When storeDir is non-empty the ranked selection is written
// to selected_features.csv in that directory.
func (s *FScoreSelector) Run(ds *dataset.Dataset, storeDir string) (*dataset.Dataset, error) {
	if ds.IsEmpty() {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if s.n < 1 || s.n > ds.NumFeatures() {
		return nil, errors.NewValidationError("selected_feature_number",
			"must be between 1 and the dataset feature count", s.n)
	}

	scores, err := fScores(ds)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	selected := order[:s.n]

	reduced, err := ds.SelectFeatures(selected)
	if err != nil {
		return nil, err
	}

	if storeDir != "" {
		if err := s.saveSelection(ds, selected, scores, storeDir); err != nil {
			return nil, err
		}
	}
	return reduced, nil
}

// fScores computes the one-way ANOVA F statistic per feature for the binary
// label split.
func fScores(ds *dataset.Dataset) ([]float64, error) {
	rows, cols := ds.X.Dims()
	nPos, nNeg := 0, 0
	for _, v := range ds.Y {
		if v == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos < 2 || nNeg < 2 {
		return nil, errors.NewValueError("selector.Run",
			"each class needs at least two samples to score features")
	}

	scores := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sumPos, sumNeg float64
		for i := 0; i < rows; i++ {
			if ds.Y[i] == 1 {
				sumPos += ds.X.At(i, j)
			} else {
				sumNeg += ds.X.At(i, j)
			}
		}
		meanPos := sumPos / float64(nPos)
		meanNeg := sumNeg / float64(nNeg)
		grand := (sumPos + sumNeg) / float64(rows)

		var ssWithin float64
		for i := 0; i < rows; i++ {
			mean := meanNeg
			if ds.Y[i] == 1 {
				mean = meanPos
			}
			d := ds.X.At(i, j) - mean
			ssWithin += d * d
		}
		ssBetween := float64(nPos)*(meanPos-grand)*(meanPos-grand) +
			float64(nNeg)*(meanNeg-grand)*(meanNeg-grand)

		if ssWithin == 0 {
			// Perfectly separated constant-within-class feature.
			scores[j] = ssBetween * float64(rows)
			continue
		}
		scores[j] = ssBetween / (ssWithin / float64(rows-2))
	}
	return scores, nil
}

func (s *FScoreSelector) saveSelection(ds *dataset.Dataset, selected []int, scores []float64, storeDir string) error {
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return errors.Wrap(err, "selector: create store folder")
	}
	file, err := os.Create(filepath.Join(storeDir, "selected_features.csv"))
	if err != nil {
		return errors.Wrap(err, "selector: create selection file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	if err := writer.Write([]string{"rank", "feature", "f_score"}); err != nil {
		return errors.Wrap(err, "selector: write selection header")
	}
	for rank, idx := range selected {
		name := strconv.Itoa(idx)
		if ds.FeatureNames != nil {
			name = ds.FeatureNames[idx]
		}
		row := []string{
			strconv.Itoa(rank + 1),
			name,
			strconv.FormatFloat(scores[idx], 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "selector: write selection row")
		}
	}
	return nil
}
