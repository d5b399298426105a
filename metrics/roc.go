package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ROCCurve computes the receiver operating characteristic of binary labels
// and predicted scores. It returns parallel FPR and TPR sequences starting
// at (0,0) and ending at (1,1), with one point per distinct score threshold.
func ROCCurve(yTrue, yScore *mat.VecDense) (fpr, tpr []float64, err error) {
	n, err := checkBinaryInputs("ROCCurve", yTrue, yScore)
	if err != nil {
		return nil, nil, err
	}

	type sample struct {
		score float64
		pos   bool
	}
	samples := make([]sample, n)
	nPos, nNeg := 0, 0
	for i := 0; i < n; i++ {
		pos := yTrue.AtVec(i) == 1
		samples[i] = sample{score: yScore.AtVec(i), pos: pos}
		if pos {
			nPos++
		} else {
			nNeg++
		}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].score > samples[j].score })

	fpr = []float64{0}
	tpr = []float64{0}
	tp, fp := 0, 0
	for i := 0; i < n; i++ {
		if samples[i].pos {
			tp++
		} else {
			fp++
		}
		// Emit a point only once all samples sharing a score are consumed.
		if i+1 < n && samples[i+1].score == samples[i].score {
			continue
		}
		fpr = append(fpr, rate(fp, nNeg))
		tpr = append(tpr, rate(tp, nPos))
	}
	return fpr, tpr, nil
}

func rate(count, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(count) / float64(total)
}
