package cv

import (
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/dataset"
	"github.com/YuminosukeSato/featsweep/metrics"
	"github.com/YuminosukeSato/featsweep/pkg/errors"
	"github.com/YuminosukeSato/featsweep/pkg/log"
	"github.com/YuminosukeSato/featsweep/plotting"
)

// Classifier is the contract a classifier must satisfy to be driven by the
// harness. Each Fit call must be a full, independent retrain of the data
// bound by the preceding SetData call.
type Classifier interface {
	SetData(X mat.Matrix, y []float64) error
	Fit() error
	Predict(X mat.Matrix) ([]float64, error)
	Save(dir string) error
}

// CrossValidation drives one full cross-validation pass over a dataset. It
// exclusively owns its classifier instance for the duration of a Run; the
// classifier's fit state is overwritten fold by fold and finally replaced by
// the full-dataset refit.
type CrossValidation struct {
	clf      Classifier
	method   Method
	splitter Splitter
}

// Option is a functional option for CrossValidation.
type Option func(*CrossValidation)

// WithMethod selects the fold-splitting scheme. The default is
// MethodStratified5.
func WithMethod(m Method) Option {
	return func(c *CrossValidation) {
		c.method = m
		c.splitter = NewSplitter(m)
	}
}

// WithSplitter overrides the splitter directly, for schemes not covered by
// the Method enum.
func WithSplitter(s Splitter) Option {
	return func(c *CrossValidation) {
		c.splitter = s
	}
}

// New creates a CrossValidation runner around a classifier.
func New(clf Classifier, opts ...Option) *CrossValidation {
	c := &CrossValidation{
		clf:      clf,
		method:   MethodStratified5,
		splitter: NewSplitter(MethodStratified5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classifier returns the classifier instance owned by the runner.
func (c *CrossValidation) Classifier() Classifier {
	return c.clf
}

// Method returns the configured fold-splitting scheme.
func (c *CrossValidation) Method() Method {
	return c.method
}

// Run performs one full cross-validation pass over ds.
//
// For every fold the classifier is fit on the training partition and
// predicts both partitions; the per-sample predictions are pooled across
// folds and the train/validation metric records are computed once over the
// pooled sequences. The classifier is then refit on the whole of ds to
// produce the deployable model, which evaluates testDS when it is non-nil
// and non-empty. A nil or empty testDS is the normal no-test path and
// yields a zero-valued test record.
//
// When storeDir is non-empty the pooled prediction and label arrays, the
// fold validation-index table, the ROC plots, the fitted classifier state
// and a sorted metric summary are persisted there. The directory is created
// if absent.
func (c *CrossValidation) Run(ds, testDS *dataset.Dataset, storeDir string) (train, val, test metrics.Record, err error) {
	if ds.IsEmpty() {
		return train, val, test, errors.WithStack(errors.ErrEmptyData)
	}

	folds, err := c.splitter.Split(ds.Y)
	if err != nil {
		return train, val, test, err
	}

	slog.Debug("cross-validation started",
		slog.String(log.OperationKey, "cv_run"),
		slog.String("cv.method", c.method.String()),
		slog.Int(log.FoldsKey, len(folds)),
		slog.Int(log.SamplesKey, ds.NumSamples()),
		slog.Int(log.FeaturesKey, ds.NumFeatures()),
	)

	var trainPred, trainLabel, valPred, valLabel []float64
	valIndexStore := make([][]int, len(folds))

	for k, fold := range folds {
		valIndexStore[k] = fold.ValIndices

		trainX, trainY := ds.SubsetRows(fold.TrainIndices)
		valX, valY := ds.SubsetRows(fold.ValIndices)

		if err := c.clf.SetData(trainX, trainY); err != nil {
			return train, val, test, errors.Wrapf(err, "fold %d: set data", k)
		}
		if err := c.clf.Fit(); err != nil {
			return train, val, test, errors.Wrapf(err, "fold %d: fit", k)
		}

		trainProb, err := c.clf.Predict(trainX)
		if err != nil {
			return train, val, test, errors.Wrapf(err, "fold %d: predict train", k)
		}
		valProb, err := c.clf.Predict(valX)
		if err != nil {
			return train, val, test, errors.Wrapf(err, "fold %d: predict validation", k)
		}

		trainPred = append(trainPred, trainProb...)
		trainLabel = append(trainLabel, trainY...)
		valPred = append(valPred, valProb...)
		valLabel = append(valLabel, valY...)
	}

	train, err = metrics.Estimate(vec(trainPred), vec(trainLabel), metrics.PhaseTrain)
	if err != nil {
		return train, val, test, errors.Wrap(err, "pooled train metrics")
	}
	val, err = metrics.Estimate(vec(valPred), vec(valLabel), metrics.PhaseVal)
	if err != nil {
		return train, val, test, errors.Wrap(err, "pooled validation metrics")
	}

	// Refit on the full dataset for the deployable model.
	if err := c.clf.SetData(ds.X, ds.Y); err != nil {
		return train, val, test, errors.Wrap(err, "full refit: set data")
	}
	if err := c.clf.Fit(); err != nil {
		return train, val, test, errors.Wrap(err, "full refit: fit")
	}

	var testPred []float64
	haveTest := testDS != nil && !testDS.IsEmpty()
	if haveTest {
		testPred, err = c.clf.Predict(testDS.X)
		if err != nil {
			return train, val, test, errors.Wrap(err, "predict test")
		}
		test, err = metrics.Estimate(vec(testPred), testDS.Labels(), metrics.PhaseTest)
		if err != nil {
			return train, val, test, errors.Wrap(err, "test metrics")
		}
	}

	if storeDir != "" {
		art := runArtifacts{
			trainPred:  trainPred,
			trainLabel: trainLabel,
			valPred:    valPred,
			valLabel:   valLabel,
			valIndices: valIndexStore,
			records:    []metrics.Record{train, val},
		}
		if haveTest {
			art.testPred = testPred
			art.testLabel = testDS.Y
			art.records = append(art.records, test)
		}
		if err := c.persist(art, storeDir); err != nil {
			return train, val, test, err
		}
	}

	return train, val, test, nil
}

// persist writes every artifact of one run into storeDir.
func (c *CrossValidation) persist(art runArtifacts, storeDir string) error {
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return errors.Wrap(err, "create store folder")
	}

	arrays := map[string][]float64{
		"train_predict": art.trainPred,
		"train_label":   art.trainLabel,
		"val_predict":   art.valPred,
		"val_label":     art.valLabel,
	}
	if art.testPred != nil {
		arrays["test_predict"] = art.testPred
		arrays["test_label"] = art.testLabel
	}
	for name, values := range arrays {
		if err := SaveFloatArray(filepath.Join(storeDir, name+".gob"), values); err != nil {
			return err
		}
	}

	if err := writeFoldTable(filepath.Join(storeDir, "cv_info.csv"), art.valIndices); err != nil {
		return err
	}

	if err := plotting.DrawROC(vec(art.trainPred), vec(art.trainLabel),
		"train ROC", filepath.Join(storeDir, "train_roc.png")); err != nil {
		return err
	}
	if err := plotting.DrawROC(vec(art.valPred), vec(art.valLabel),
		"validation ROC", filepath.Join(storeDir, "val_roc.png")); err != nil {
		return err
	}
	if art.testPred != nil {
		if err := plotting.DrawROC(vec(art.testPred), vec(art.testLabel),
			"test ROC", filepath.Join(storeDir, "test_roc.png")); err != nil {
			return err
		}
	}

	if err := c.clf.Save(storeDir); err != nil {
		return errors.Wrap(err, "save classifier")
	}

	summary := make(map[string]float64)
	for _, rec := range art.records {
		for key, v := range rec.Prefixed() {
			summary[key] = v
		}
	}
	if err := writeSummary(filepath.Join(storeDir, "result.csv"), summary); err != nil {
		return err
	}

	slog.Debug("cross-validation artifacts written",
		slog.String(log.OperationKey, "cv_run"),
		slog.String(log.StorePathKey, storeDir),
	)
	return nil
}

// runArtifacts bundles everything one Run persists.
type runArtifacts struct {
	trainPred, trainLabel []float64
	valPred, valLabel     []float64
	testPred, testLabel   []float64
	valIndices            [][]int
	records               []metrics.Record
}

func vec(values []float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}
