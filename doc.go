// Package featsweep provides a cross-validation harness for evaluating
// binary classifiers over feature-selected tabular data.
//
// The harness is a two-level experiment driver. The inner loop
// (cv.CrossValidation) runs one full cross-validation pass over a fixed
// feature set, pooling out-of-fold predictions before computing metrics.
// The outer loop (cv.FeatureSweep) repeats the inner loop once per candidate
// feature count, records the metric curves, and selects the best operating
// point by argmax on the validation metric.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/YuminosukeSato/featsweep/cv"
//	    "github.com/YuminosukeSato/featsweep/dataset"
//	    "github.com/YuminosukeSato/featsweep/linear"
//	    "github.com/YuminosukeSato/featsweep/selector"
//	)
//
//	func main() {
//	    ds, err := dataset.LoadCSV("train.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    runner := cv.New(linear.NewLogisticClassifier(), cv.WithMethod(cv.MethodStratified5))
//	    sweep := cv.NewFeatureSweep(runner, selector.NewFScoreSelector(),
//	        cv.WithMaxFeatureNumber(10))
//
//	    result, err := sweep.Run(ds, nil, "out")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, sel := range result.BestByValidation {
//	        log.Printf("%s: best at %d features", sel.Metric, sel.FeatureNumber)
//	    }
//	}
//
// # Packages
//
// The module is organized into several packages:
//
//   - dataset: feature matrix + binary label container
//   - cv: fold splitters, cross-validation runner, feature sweep
//   - metrics: pooled binary-classification metrics and phase-tagged records
//   - selector: ANOVA F-score feature selection
//   - linear: logistic-regression classifier satisfying the cv contract
//   - plotting: ROC and metric-vs-feature-count rendering
package featsweep
