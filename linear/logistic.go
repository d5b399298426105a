// Package linear provides a compact logistic-regression classifier that
// satisfies the classifier contract consumed by the cv package:
// SetData, Fit, Predict, Save.
package linear

import (
	"log/slog"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/core/model"
	"github.com/YuminosukeSato/featsweep/pkg/errors"
	"github.com/YuminosukeSato/featsweep/pkg/log"
)

// modelFileName is the artifact name used by Save.
const modelFileName = "classifier.gob"

// LogisticClassifier is a binary logistic-regression classifier trained by
// batch gradient descent. Every Fit call is a full retrain from zero
// weights; no state from a previous fit survives into the next one.
type LogisticClassifier struct {
	State *model.StateManager

	// Hyperparameters
	learningRate float64
	maxIter      int
	tol          float64

	// Model parameters, exported for gob encoding.
	Weights []float64
	Bias    float64

	// Training data bound by SetData.
	x *mat.Dense
	y []float64
}

// LogisticOption is a functional option for LogisticClassifier.
type LogisticOption func(*LogisticClassifier)

// WithLearningRate sets the gradient-descent step size.
func WithLearningRate(lr float64) LogisticOption {
	return func(c *LogisticClassifier) {
		c.learningRate = lr
	}
}

// WithMaxIter sets the maximum number of gradient-descent iterations.
func WithMaxIter(maxIter int) LogisticOption {
	return func(c *LogisticClassifier) {
		c.maxIter = maxIter
	}
}

// WithTol sets the stopping tolerance on the gradient norm.
func WithTol(tol float64) LogisticOption {
	return func(c *LogisticClassifier) {
		c.tol = tol
	}
}

// NewLogisticClassifier creates a LogisticClassifier with default
// hyperparameters.
func NewLogisticClassifier(opts ...LogisticOption) *LogisticClassifier {
	c := &LogisticClassifier{
		State:        model.NewStateManager(),
		learningRate: 0.1,
		maxIter:      500,
		tol:          1e-6,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the classifier name used in logs and summaries.
func (c *LogisticClassifier) Name() string {
	return "LogisticRegression"
}

// SetData binds the training matrix and binary label vector for the next
// Fit call. The matrix is copied so later fold mutations cannot leak in.
func (c *LogisticClassifier) SetData(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.WithStack(errors.ErrEmptyData)
	}
	if rows != len(y) {
		return errors.NewDimensionError("LogisticClassifier.SetData", rows, len(y), 0)
	}
	for _, v := range y {
		if v != 0 && v != 1 {
			return errors.NewValueError("LogisticClassifier.SetData",
				"labels must be binary (0 or 1)")
		}
	}

	c.x = mat.DenseCopyOf(X)
	c.y = append([]float64(nil), y...)
	return nil
}

// Fit trains the model on the data bound by SetData. It always starts from
// zero weights, so repeated calls are independent full retrains.
func (c *LogisticClassifier) Fit() error {
	if c.x == nil {
		return errors.NewValueError("LogisticClassifier.Fit", "no data set. Call SetData() first")
	}

	rows, cols := c.x.Dims()
	c.State.Reset()
	c.Weights = make([]float64, cols)
	c.Bias = 0

	grad := make([]float64, cols)
	for iter := 0; iter < c.maxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64
		for i := 0; i < rows; i++ {
			p := sigmoid(c.decision(c.x.RawRowView(i)))
			diff := p - c.y[i]
			for j := 0; j < cols; j++ {
				grad[j] += diff * c.x.At(i, j)
			}
			gradBias += diff
		}

		var norm float64
		for j := 0; j < cols; j++ {
			g := grad[j] / float64(rows)
			c.Weights[j] -= c.learningRate * g
			norm += g * g
		}
		gb := gradBias / float64(rows)
		c.Bias -= c.learningRate * gb
		norm += gb * gb

		if math.Sqrt(norm) < c.tol {
			break
		}
	}

	c.State.SetFitted()
	c.State.SetDimensions(cols, rows)
	slog.Debug("classifier fitted",
		slog.String(log.ModelNameKey, c.Name()),
		slog.String(log.OperationKey, "fit"),
		slog.Int(log.SamplesKey, rows),
		slog.Int(log.FeaturesKey, cols),
	)
	return nil
}

// Predict returns the positive-class probability for each row of X.
func (c *LogisticClassifier) Predict(X mat.Matrix) ([]float64, error) {
	if !c.State.IsFitted() {
		return nil, errors.NewNotFittedError(c.Name(), "Predict")
	}
	rows, cols := X.Dims()
	if cols != len(c.Weights) {
		return nil, errors.NewDimensionError("LogisticClassifier.Predict", len(c.Weights), cols, 1)
	}

	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var z float64
		for j := 0; j < cols; j++ {
			z += c.Weights[j] * X.At(i, j)
		}
		scores[i] = sigmoid(z + c.Bias)
	}
	return scores, nil
}

// Save persists the fitted model state to dir via gob encoding.
func (c *LogisticClassifier) Save(dir string) error {
	if !c.State.IsFitted() {
		return errors.NewNotFittedError(c.Name(), "Save")
	}
	return model.SaveModel(c, filepath.Join(dir, modelFileName))
}

// Load restores a model previously written by Save from dir.
func (c *LogisticClassifier) Load(dir string) error {
	return model.LoadModel(c, filepath.Join(dir, modelFileName))
}

func (c *LogisticClassifier) decision(row []float64) float64 {
	var z float64
	for j, w := range c.Weights {
		z += w * row[j]
	}
	return z + c.Bias
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
