// Package model provides fitted-state management and persistence helpers
// shared by classifiers that plug into the cross-validation harness.
package model

// StateManager tracks the fitted state of a model together with the
// dimensions seen during fitting. Fields are exported for gob encoding.
type StateManager struct {
	Fitted bool

	NFeatures int
	NSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.Fitted = true
}

// Reset resets the fitted state. A full retrain starts from Reset so no
// state from a previous Fit call survives into the next one.
func (s *StateManager) Reset() {
	s.Fitted = false
	s.NFeatures = 0
	s.NSamples = 0
}

// SetDimensions sets the number of features and samples seen during fitting.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the number of features and samples seen during
// fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	return s.NFeatures, s.NSamples
}
