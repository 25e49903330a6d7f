package strategy

import (
	"fmt"

	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"

	"github.com/rs/zerolog"
)

// OptimalStrategy follows the dynamic-programming policy. The full state
// space is solved up-front so Decide is a table lookup.
type OptimalStrategy struct {
	policy *model.Policy
	stats  pricing.Stats
}

func NewOptimalStrategy(params model.PricingParams, log zerolog.Logger) (*OptimalStrategy, error) {
	opt, err := pricing.New(params, log)
	if err != nil {
		return nil, fmt.Errorf("optimal strategy: %w", err)
	}
	pol := opt.Policy()
	return &OptimalStrategy{policy: pol, stats: opt.Stats()}, nil
}

// NewPolicyStrategy wraps an already solved policy.
func NewPolicyStrategy(pol *model.Policy) *OptimalStrategy {
	return &OptimalStrategy{policy: pol}
}

func (s *OptimalStrategy) Name() string { return "optimal" }

func (s *OptimalStrategy) Policy() *model.Policy { return s.policy }

func (s *OptimalStrategy) Stats() pricing.Stats { return s.stats }

func (s *OptimalStrategy) Decide(ctx Context) model.Decision {
	d, ok := s.policy.At(ctx.Period, ctx.Inventory)
	if !ok {
		return model.Decision{}
	}
	return d
}
