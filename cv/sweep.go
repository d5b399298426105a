package cv

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/featsweep/dataset"
	"github.com/YuminosukeSato/featsweep/metrics"
	"github.com/YuminosukeSato/featsweep/pkg/errors"
	"github.com/YuminosukeSato/featsweep/pkg/log"
	"github.com/YuminosukeSato/featsweep/plotting"
)

// FeatureSelector is the contract the sweep consumes to reduce a dataset to
// a configured number of features.
type FeatureSelector interface {
	SetSelectedFeatureNumber(n int)
	Run(ds *dataset.Dataset, storeDir string) (*dataset.Dataset, error)
}

// FeatureSweep explores the effect of the number of selected features by
// running a full cross-validation pass per candidate feature count.
type FeatureSweep struct {
	cv               *CrossValidation
	selector         FeatureSelector
	maxFeatureNumber int
	metricNames      []string
}

// SweepOption is a functional option for FeatureSweep.
type SweepOption func(*FeatureSweep)

// WithMaxFeatureNumber sets the inclusive upper bound of the sweep.
func WithMaxFeatureNumber(n int) SweepOption {
	return func(s *FeatureSweep) {
		s.maxFeatureNumber = n
	}
}

// WithMetricNames sets which metrics get curves and selections. The default
// is auc and accuracy.
func WithMetricNames(names ...string) SweepOption {
	return func(s *FeatureSweep) {
		s.metricNames = names
	}
}

// NewFeatureSweep creates a sweep around an inner runner and a feature
// selector.
func NewFeatureSweep(cv *CrossValidation, sel FeatureSelector, opts ...SweepOption) *FeatureSweep {
	s := &FeatureSweep{
		cv:               cv,
		selector:         sel,
		maxFeatureNumber: 1,
		metricNames:      []string{"auc", "accuracy"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxFeatureNumber returns the inclusive upper bound of the sweep.
func (s *FeatureSweep) MaxFeatureNumber() int {
	return s.maxFeatureNumber
}

// MetricCurve holds the per-feature-count values of one metric. Index i
// corresponds to feature count i+1. Test is nil when the sweep ran without
// test data.
type MetricCurve struct {
	Name  string
	Train []float64
	Val   []float64
	Test  []float64
}

// Selection is one selected operating point: the metric that drove the
// selection, the 1-based feature count, and the prefix-free metric values
// of the selected record.
type Selection struct {
	Metric        string
	FeatureNumber int
	Values        map[string]float64
}

// SweepResult aggregates everything a sweep produced.
type SweepResult struct {
	Curves []MetricCurve

	// BestByValidation holds, per requested metric, the validation record
	// at the validation-argmax feature count.
	BestByValidation []Selection

	// TestAtValidationOptimum holds, per requested metric, the test record
	// at the validation-argmax feature count. Empty when no test metrics
	// were produced.
	TestAtValidationOptimum []Selection

	// TestAtTestOptimum holds, per requested metric, the test record at the
	// independent test-argmax feature count. Empty when no test metrics
	// were produced.
	TestAtTestOptimum []Selection
}

// Run sweeps the feature count from 1 to the configured maximum. For each
// count the selector reduces ds, the inner runner cross-validates the
// reduced dataset (persisting into a feature_<n> subfolder when storeDir is
// set), and the metric records are collected into curves. After the sweep
// the best feature count per metric is selected by argmax on the validation
// curve; when test metrics exist, the test records at the validation
// optimum and at the independent test optimum are selected as well.
//
// Test availability must be uniform: a sweep where only some iterations
// produce test metrics is rejected.
func (s *FeatureSweep) Run(ds, testDS *dataset.Dataset, storeDir string) (*SweepResult, error) {
	if ds.IsEmpty() {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if s.maxFeatureNumber < 1 {
		return nil, errors.NewValidationError("max_feature_number",
			"must be at least 1", s.maxFeatureNumber)
	}

	var trainRecords, valRecords, testRecords []metrics.Record

	for n := 1; n <= s.maxFeatureNumber; n++ {
		featureDir := ""
		if storeDir != "" {
			featureDir = filepath.Join(storeDir, fmt.Sprintf("feature_%d", n))
			if err := os.MkdirAll(featureDir, 0o755); err != nil {
				return nil, errors.Wrap(err, "create feature folder")
			}
		}

		s.selector.SetSelectedFeatureNumber(n)
		reduced, err := s.selector.Run(ds, featureDir)
		if err != nil {
			return nil, errors.Wrapf(err, "feature count %d: select", n)
		}

		alignedTest, err := alignTestFeatures(testDS, reduced)
		if err != nil {
			return nil, errors.Wrapf(err, "feature count %d: align test set", n)
		}

		slog.Info("sweep iteration",
			slog.String(log.OperationKey, "feature_sweep"),
			slog.Int(log.FeatureNumberKey, n),
			slog.Int(log.FeaturesKey, reduced.NumFeatures()),
		)

		train, val, test, err := s.cv.Run(reduced, alignedTest, featureDir)
		if err != nil {
			return nil, errors.Wrapf(err, "feature count %d: cross-validate", n)
		}
		trainRecords = append(trainRecords, train)
		valRecords = append(valRecords, val)
		testRecords = append(testRecords, test)
	}

	haveTest, err := uniformTestPresence(testRecords)
	if err != nil {
		return nil, err
	}

	curves, err := s.buildCurves(trainRecords, valRecords, testRecords, haveTest)
	if err != nil {
		return nil, err
	}

	if storeDir != "" {
		if err := s.plotCurves(curves, storeDir); err != nil {
			return nil, err
		}
	}

	result := &SweepResult{Curves: curves}
	for _, curve := range curves {
		valBest := argmax(curve.Val)
		result.BestByValidation = append(result.BestByValidation,
			newSelection(curve.Name, valBest, valRecords[valBest]))

		if haveTest {
			result.TestAtValidationOptimum = append(result.TestAtValidationOptimum,
				newSelection(curve.Name, valBest, testRecords[valBest]))
			testBest := argmax(curve.Test)
			result.TestAtTestOptimum = append(result.TestAtTestOptimum,
				newSelection(curve.Name, testBest, testRecords[testBest]))
		}
	}
	return result, nil
}

// alignTestFeatures projects the test set onto the reduced dataset's
// feature names so the deployable model sees the same feature space. When
// either side carries no feature names the test set is passed through
// unchanged and the caller is responsible for consistency.
func alignTestFeatures(testDS, reduced *dataset.Dataset) (*dataset.Dataset, error) {
	if testDS == nil || testDS.IsEmpty() {
		return testDS, nil
	}
	if reduced.FeatureNames == nil || testDS.FeatureNames == nil {
		return testDS, nil
	}
	return testDS.SelectFeaturesByName(reduced.FeatureNames)
}

// uniformTestPresence verifies that either every sweep iteration produced a
// test record or none did.
func uniformTestPresence(testRecords []metrics.Record) (bool, error) {
	haveTest := !testRecords[0].IsZero()
	for i, rec := range testRecords {
		if rec.IsZero() == haveTest {
			return false, errors.NewValidationError("test_dataset",
				"test metrics must be uniformly present or absent across a sweep, iteration differs",
				i+1)
		}
	}
	return haveTest, nil
}

func (s *FeatureSweep) buildCurves(trainRecords, valRecords, testRecords []metrics.Record, haveTest bool) ([]MetricCurve, error) {
	curves := make([]MetricCurve, 0, len(s.metricNames))
	for _, name := range s.metricNames {
		curve := MetricCurve{Name: name}
		for i := range trainRecords {
			trainV, ok := trainRecords[i].Get(name)
			if !ok {
				return nil, errors.Newf("metric %q missing from train record at feature count %d", name, i+1)
			}
			valV, ok := valRecords[i].Get(name)
			if !ok {
				return nil, errors.Newf("metric %q missing from validation record at feature count %d", name, i+1)
			}
			curve.Train = append(curve.Train, trainV)
			curve.Val = append(curve.Val, valV)
			if haveTest {
				testV, ok := testRecords[i].Get(name)
				if !ok {
					return nil, errors.Newf("metric %q missing from test record at feature count %d", name, i+1)
				}
				curve.Test = append(curve.Test, testV)
			}
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

func (s *FeatureSweep) plotCurves(curves []MetricCurve, storeDir string) error {
	x := make([]float64, s.maxFeatureNumber)
	for i := range x {
		x[i] = float64(i + 1)
	}
	for _, curve := range curves {
		series := [][]float64{curve.Train, curve.Val}
		names := []string{"train", "validation"}
		if curve.Test != nil {
			series = append(series, curve.Test)
			names = append(names, "test")
		}
		path := filepath.Join(storeDir, curve.Name+"_feature_number.png")
		if err := plotting.DrawCurve(x, series, names, "# Features", curve.Name, path); err != nil {
			return err
		}
	}
	return nil
}

// newSelection builds a Selection from a record at a 0-based sweep index.
// Record values are already prefix-free; the phase lives in the record's
// structured Phase field.
func newSelection(metric string, index int, rec metrics.Record) Selection {
	values := make(map[string]float64, len(rec.Values))
	for name, v := range rec.Values {
		values[name] = v
	}
	return Selection{
		Metric:        metric,
		FeatureNumber: index + 1,
		Values:        values,
	}
}

// argmax returns the index of the largest value, first occurrence on ties.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
