// Package cv implements the two-level cross-validation harness.
//
// CrossValidation is the inner loop: it drives one full cross-validation
// pass over a fixed feature set, pools out-of-fold predictions before
// computing metrics, refits on the full dataset for the deployable model,
// and optionally evaluates a held-out test set and persists artifacts.
//
// FeatureSweep is the outer loop: for every feature count from 1 to a
// configured maximum it reduces the dataset with a feature selector, runs
// the inner loop, records the metric curves, and selects the best feature
// count by argmax on the validation metric.
//
// The metric policy is pooled, not averaged: train and validation metrics
// are computed once over predictions concatenated across all folds.
package cv
