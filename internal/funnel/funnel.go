// Package funnel applies pre-scoring filters to the candidate list of a
// batch run. Filters only skip work; they never change a score, so a
// candidate dropped here simply keeps whatever result is already stored.
package funnel

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/store"
)

// Filter represents a single filtering step applied to candidates.
type Filter interface {
	Name() string
	Validate() error
	Apply(ctx context.Context, deps Deps, candidates []store.Candidate) ([]store.Candidate, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Store         *store.Store
	Logger        *zap.Logger
	Job           *store.Job
	ConfigVersion string
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the remaining
// candidates.
func Run(ctx context.Context, deps Deps, steps []Filter, candidates []store.Candidate) ([]store.Candidate, error) {
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		next, info, err := step.Apply(ctx, deps, candidates)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("funnel step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		candidates = next
	}

	return candidates, nil
}
