package pricing

import (
	"errors"
	"fmt"

	"dynamic-pricing/internal/model"

	"github.com/rs/zerolog"
)

// ErrOutOfBounds is wrapped by BoundsError.
var ErrOutOfBounds = errors.New("state out of bounds")

// BoundsError reports a Run call outside [0, Horizon] x [0, Inventory].
type BoundsError struct {
	T, N               int
	Horizon, Inventory int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("state (t=%d, n=%d) outside [0, %d] x [0, %d]", e.T, e.N, e.Horizon, e.Inventory)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Optimizer solves the finite-horizon pricing problem by dynamic programming
// over states (t, n). Each state is solved at most once and memoised; an
// Optimizer is not safe for concurrent use.
//
// Notes:
//   - Values are discounted by Discount per period and unsold stock is
//     salvaged at SalvageValue per unit at the horizon.
//   - The best price starts from the (0, 0) decision, so a state where no
//     price has a positive expected value reports price 0 and value 0.
type Optimizer struct {
	params model.PricingParams
	sales  *SalesModel
	cache  *valueCache
	log    zerolog.Logger
}

// Stats describes how much of the state space has been evaluated.
type Stats struct {
	States         int `json:"states"`
	StatesComputed int `json:"states_computed"`
	CacheHits      int `json:"cache_hits"`
}

func New(params model.PricingParams, log zerolog.Logger) (*Optimizer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := params.Clone()
	sales, err := NewSalesModel(p.CompetitorPrices, p.Coefficients)
	if err != nil {
		return nil, err
	}
	if log.GetLevel() == zerolog.Disabled {
		log = zerolog.Nop()
	}
	return &Optimizer{
		params: p,
		sales:  sales,
		cache:  newValueCache(p.Horizon, p.Inventory),
		log:    log.With().Str("component", "pricing_optimizer").Logger(),
	}, nil
}

// Params returns a copy of the parameters the optimizer was built with.
func (o *Optimizer) Params() model.PricingParams { return o.params.Clone() }

// SalesModel returns the sale-probability model used by the optimizer.
func (o *Optimizer) SalesModel() *SalesModel { return o.sales }

// Run returns the optimal price and expected discounted value for (t, n).
// Typical use is Run(0, Inventory).
func (o *Optimizer) Run(t, n int) (model.Decision, error) {
	if t < 0 || n < 0 || t > o.params.Horizon || n > o.params.Inventory {
		return model.Decision{}, &BoundsError{T: t, N: n, Horizon: o.params.Horizon, Inventory: o.params.Inventory}
	}
	if d, ok := o.cache.get(t, n); ok {
		return d, nil
	}
	o.fill(t, n)
	d, _ := o.cache.lookup(t, n)
	return d, nil
}

// Solve fills every state bottom-up, from the horizon back to t = 0.
// Results are identical to Run.
func (o *Optimizer) Solve() {
	o.fill(0, o.params.Inventory)
	s := o.Stats()
	o.log.Debug().
		Int("horizon", o.params.Horizon).
		Int("inventory", o.params.Inventory).
		Int("states", s.StatesComputed).
		Int("cache_hits", s.CacheHits).
		Msg("state space solved")
}

// Policy solves every state and returns the full decision table.
func (o *Optimizer) Policy() *model.Policy {
	o.Solve()
	pol := model.NewPolicy(o.params.Horizon, o.params.Inventory)
	for n := 0; n <= o.params.Inventory; n++ {
		for t := 0; t <= o.params.Horizon; t++ {
			d, _ := o.cache.lookup(t, n)
			pol.Set(t, n, d)
		}
	}
	return pol
}

func (o *Optimizer) Stats() Stats {
	return Stats{
		States:         len(o.cache.slots),
		StatesComputed: o.cache.computed(),
		CacheHits:      o.cache.hits,
	}
}

// fill solves every state with t >= tMin and n <= nMax that is not yet
// cached, from the horizon backwards. A state only depends on period t+1
// with no more stock, so solveState always finds its successors cached.
func (o *Optimizer) fill(tMin, nMax int) {
	for t := o.params.Horizon; t >= tMin; t-- {
		for n := 0; n <= nMax; n++ {
			if _, ok := o.cache.lookup(t, n); ok {
				continue
			}
			d := o.cache.put(t, n, o.solveState(t, n))
			o.log.Trace().Int("t", t).Int("n", n).Float64("price", d.Price).Float64("value", d.Value).Msg("state solved")
		}
	}
}

// value is the memoised value function. Inside fill every lookup hits.
func (o *Optimizer) value(t, n int) model.Decision {
	if d, ok := o.cache.get(t, n); ok {
		return d
	}
	d := o.solveState(t, n)
	o.log.Trace().Int("t", t).Int("n", n).Float64("price", d.Price).Float64("value", d.Value).Msg("state solved")
	return o.cache.put(t, n, d)
}

func (o *Optimizer) solveState(t, n int) model.Decision {
	if t >= o.params.Horizon {
		return model.Decision{Price: 0, Value: float64(n) * o.params.SalvageValue}
	}
	if n <= 0 {
		return model.Decision{}
	}

	var best model.Decision
	for _, price := range o.params.PriceGrid {
		v := o.expectedValue(price, t, n)
		if v > best.Value {
			best = model.Decision{Price: price, Value: v}
		}
	}
	return best
}

// expectedValue is the expected discounted profit of charging price at
// (t, n) and acting optimally afterwards.
func (o *Optimizer) expectedValue(price float64, t, n int) float64 {
	lambda := o.params.MaxDemand * o.sales.Probability(price, t)
	holding := float64(n) * o.params.HoldingCost

	branch := func(pi float64, demand int) float64 {
		sold := min(n, demand)
		future := o.params.Discount * o.value(t+1, max(0, n-demand)).Value
		return pi * (float64(sold)*price - holding + future)
	}

	sum := 0.0
	if o.params.DemandTail == model.DemandTailStockout {
		cdf := 0.0
		for i := 0; i < n; i++ {
			pi := PoissonPDF(i, lambda)
			cdf += pi
			sum += branch(pi, i)
		}
		return sum + branch(max(0, 1-cdf), n)
	}

	iMax := PoissonQuantile(lambda, QuantileCutoff)
	for i := 0; i < iMax; i++ {
		if i > n {
			break
		}
		sum += branch(PoissonPDF(i, lambda), i)
	}
	return sum
}
