// Package metrics provides binary-classification metrics for pooled
// cross-validation predictions, together with phase-tagged metric records.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// checkBinaryInputs validates a (labels, scores) pair for binary metrics.
func checkBinaryInputs(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	for i := 0; i < n; i++ {
		v := yTrue.AtVec(i)
		if v != 0 && v != 1 {
			return 0, errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return n, nil
}

// AUC computes the area under the ROC curve from binary labels and
// predicted scores. Ties in the scores contribute half a pair each
// (Mann-Whitney statistic). The degenerate single-class case returns 0.5.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkBinaryInputs("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	nPos, nNeg := 0, 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		// Undefined; 0.5 keeps pooled sweeps comparable.
		return 0.5, nil
	}

	var pairs float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != 1 {
			continue
		}
		pi := yPred.AtVec(i)
		for j := 0; j < n; j++ {
			if yTrue.AtVec(j) != 0 {
				continue
			}
			pj := yPred.AtVec(j)
			switch {
			case pi > pj:
				pairs += 1.0
			case pi == pj:
				pairs += 0.5
			}
		}
	}
	return pairs / float64(nPos*nNeg), nil
}

// AUCMatrix computes AUC from n×1 (or wider, first column used) matrices.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(yTrueVec, yPredVec)
}

// BinaryLogLoss computes the binary cross-entropy between labels and
// predicted probabilities. Probabilities are clipped away from 0 and 1.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkBinaryInputs("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	const eps = 1e-15
	var loss float64
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(yPred.AtVec(i), eps), 1-eps)
		if yTrue.AtVec(i) == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log(1 - p)
		}
	}
	return loss / float64(n), nil
}

// ClassificationError computes the fraction of misclassified samples from
// hard class predictions.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// Accuracy computes the fraction of correctly classified samples from hard
// class predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionCounts holds the binary confusion matrix entries obtained by
// thresholding scores at the given cutoff.
type ConfusionCounts struct {
	TruePositive  int
	TrueNegative  int
	FalsePositive int
	FalseNegative int
}

// Confusion thresholds scores at cutoff and counts the confusion matrix
// entries against the binary labels.
func Confusion(yTrue, yScore *mat.VecDense, cutoff float64) (ConfusionCounts, error) {
	n, err := checkBinaryInputs("Confusion", yTrue, yScore)
	if err != nil {
		return ConfusionCounts{}, err
	}

	var c ConfusionCounts
	for i := 0; i < n; i++ {
		pred := yScore.AtVec(i) > cutoff
		truth := yTrue.AtVec(i) == 1
		switch {
		case pred && truth:
			c.TruePositive++
		case !pred && !truth:
			c.TrueNegative++
		case pred && !truth:
			c.FalsePositive++
		default:
			c.FalseNegative++
		}
	}
	return c, nil
}

// Sensitivity returns the true positive rate of the counts, 0 when no
// positive samples exist.
func (c ConfusionCounts) Sensitivity() float64 {
	pos := c.TruePositive + c.FalseNegative
	if pos == 0 {
		return 0
	}
	return float64(c.TruePositive) / float64(pos)
}

// Specificity returns the true negative rate of the counts, 0 when no
// negative samples exist.
func (c ConfusionCounts) Specificity() float64 {
	neg := c.TrueNegative + c.FalsePositive
	if neg == 0 {
		return 0
	}
	return float64(c.TrueNegative) / float64(neg)
}

// PPV returns the positive predictive value of the counts, 0 when nothing
// was predicted positive.
func (c ConfusionCounts) PPV() float64 {
	predPos := c.TruePositive + c.FalsePositive
	if predPos == 0 {
		return 0
	}
	return float64(c.TruePositive) / float64(predPos)
}

// NPV returns the negative predictive value of the counts, 0 when nothing
// was predicted negative.
func (c ConfusionCounts) NPV() float64 {
	predNeg := c.TrueNegative + c.FalseNegative
	if predNeg == 0 {
		return 0
	}
	return float64(c.TrueNegative) / float64(predNeg)
}

func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil matrix")
	}
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
