package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Phase qualifies which data split a metric record was computed on.
type Phase string

const (
	PhaseTrain Phase = "train"
	PhaseVal   Phase = "val"
	PhaseTest  Phase = "test"
)

// Record is a phase-tagged set of named metric values. The phase is carried
// as a structured field so callers never need to slice prefixes off key
// strings.
type Record struct {
	Phase  Phase
	Values map[string]float64
}

// IsZero reports whether the record holds no values, which is how a skipped
// test evaluation is represented.
func (r Record) IsZero() bool {
	return len(r.Values) == 0
}

// Get returns the named value.
func (r Record) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Key returns the phase-qualified key of a metric name, e.g. "val_auc".
func (r Record) Key(name string) string {
	return string(r.Phase) + "_" + name
}

// Prefixed returns a copy of the values keyed by phase-qualified names, for
// the persisted summary table.
func (r Record) Prefixed() map[string]float64 {
	out := make(map[string]float64, len(r.Values))
	for name, v := range r.Values {
		out[r.Key(name)] = v
	}
	return out
}

// Names returns the metric names of the record in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cutoff is the score threshold used to derive hard classes from scores.
const cutoff = 0.5

// Estimate computes the standard binary-classification metric record from
// predicted scores and true labels for one phase: auc, accuracy,
// sensitivity, specificity, positive and negative predictive values, and
// the sample counts.
func Estimate(yScore, yTrue *mat.VecDense, phase Phase) (Record, error) {
	auc, err := AUC(yTrue, yScore)
	if err != nil {
		return Record{}, err
	}
	counts, err := Confusion(yTrue, yScore, cutoff)
	if err != nil {
		return Record{}, err
	}

	n := yTrue.Len()
	correct := counts.TruePositive + counts.TrueNegative
	values := map[string]float64{
		"auc":             auc,
		"accuracy":        float64(correct) / float64(n),
		"sensitivity":     counts.Sensitivity(),
		"specificity":     counts.Specificity(),
		"ppv":             counts.PPV(),
		"npv":             counts.NPV(),
		"sample_number":   float64(n),
		"positive_number": float64(counts.TruePositive + counts.FalseNegative),
		"negative_number": float64(counts.TrueNegative + counts.FalsePositive),
	}
	return Record{Phase: phase, Values: values}, nil
}
