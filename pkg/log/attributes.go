package log

// Standard attribute keys for cross-validation logging. Using these keys
// keeps fold, sweep and classifier logs filterable by the same fields.
const (
	// ModelNameKey identifies the classifier type being driven.
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "cv_run", "feature_sweep"
	OperationKey = "ml.operation"

	// PhaseKey indicates which data split is being processed.
	// Values: "train", "val", "test"
	PhaseKey = "ml.phase"

	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// FoldKey indicates the current fold index within a CV run.
	FoldKey = "cv.fold"

	// FoldsKey indicates the total number of folds of a CV run.
	FoldsKey = "cv.folds"

	// FeatureNumberKey indicates the current feature count within a sweep.
	FeatureNumberKey = "sweep.feature_number"

	// MetricKey identifies the metric a value or selection refers to.
	MetricKey = "ml.metric"

	// StorePathKey records where artifacts of a run are persisted.
	StorePathKey = "store.path"
)
