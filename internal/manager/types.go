package manager

import (
	"time"

	"co2d/internal/predictor"
)

// State represents the serving state of the manager.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Prediction is the result of one Predict call.
type Prediction struct {
	Value   float64
	Version string
	Cached  bool
}

// loadedSet is the unit swapped behind the atomic pointer. It is never
// mutated after construction.
type loadedSet struct {
	pipeline *predictor.Pipeline
	meta     predictor.Meta
	loadedAt time.Time
}

func (s *loadedSet) version() string { return s.meta.Version }
