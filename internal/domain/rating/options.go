package rating

import "github.com/okian/elorank/internal/domain/model"

// Step describes a single applied match.
type Step struct {
	Record      model.MatchRecord
	Expected    float64 // expected score of the left participant
	LeftBefore  float64
	RightBefore float64
	LeftAfter   float64
	RightAfter  float64
}

// Observer is called once per applied match, in input order.
type Observer func(Step)

// ProcessOption applies a configuration option to ProcessAll.
type ProcessOption func(*processConfig)

type processConfig struct {
	observers []Observer
}

// WithObserver registers fn to receive every applied Step.
func WithObserver(fn Observer) ProcessOption {
	return func(c *processConfig) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}
