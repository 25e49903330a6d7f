package pricing

import (
	"errors"
	"math"
	"testing"

	"dynamic-pricing/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioParams is the T=2, N=2 setup with a price-independent sale
// probability of 0.5.
func scenarioParams() model.PricingParams {
	p := model.DefaultPricingParams(2, 2)
	p.PriceGrid = []float64{1.0, 2.0}
	p.CompetitorPrices = []float64{1.5}
	p.Coefficients = []float64{0, 0, 0, 0, 0, 0, 0}
	return p
}

func newOptimizer(t *testing.T, p model.PricingParams) *Optimizer {
	t.Helper()
	o, err := New(p, zerolog.Nop())
	require.NoError(t, err)
	return o
}

func TestRun_EndToEndScenario(t *testing.T) {
	o := newOptimizer(t, scenarioParams())

	d, err := o.Run(2, 2)
	require.NoError(t, err)
	assert.Equal(t, model.Decision{Price: 0, Value: 1.0}, d, "terminal salvage of 2 units")

	d, err = o.Run(0, 0)
	require.NoError(t, err)
	assert.Equal(t, model.Decision{}, d, "empty inventory short-circuit")
}

func TestRun_TerminalStates(t *testing.T) {
	p := scenarioParams()
	p.SalvageValue = 0.75
	o := newOptimizer(t, p)

	for n := 0; n <= p.Inventory; n++ {
		d, err := o.Run(p.Horizon, n)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d.Price)
		assert.Equal(t, float64(n)*p.SalvageValue, d.Value)
	}
}

func TestRun_EmptyInventory(t *testing.T) {
	o := newOptimizer(t, scenarioParams())
	for tt := 0; tt < 2; tt++ {
		d, err := o.Run(tt, 0)
		require.NoError(t, err)
		assert.Equal(t, model.Decision{}, d)
	}
}

func TestRun_SinglePeriodByHand(t *testing.T) {
	// T=1, N=1, lambda = 10 * 0.5 = 5.
	// i=0: e^-5 * (0 - 0.1 + 0.99*0.5)
	// i=1: 5e^-5 * (p - 0.1)
	p := scenarioParams()
	p.Horizon = 1
	p.Inventory = 1
	o := newOptimizer(t, p)

	d, err := o.Run(0, 1)
	require.NoError(t, err)

	e5 := math.Exp(-5)
	want := e5*(-0.1+0.99*0.5) + 5*e5*(2.0-0.1)
	assert.Equal(t, 2.0, d.Price)
	assert.InDelta(t, want, d.Value, 1e-12)
}

func TestRun_StockoutTail(t *testing.T) {
	p := scenarioParams()
	p.Horizon = 1
	p.Inventory = 1
	p.DemandTail = model.DemandTailStockout
	o := newOptimizer(t, p)

	d, err := o.Run(0, 1)
	require.NoError(t, err)

	e5 := math.Exp(-5)
	want := e5*(-0.1+0.99*0.5) + (1-e5)*(2.0-0.1)
	assert.Equal(t, 2.0, d.Price)
	assert.InDelta(t, want, d.Value, 1e-12)

	truncated := newOptimizer(t, scenarioParams())
	tr, err := truncated.Run(0, 2)
	require.NoError(t, err)
	p2 := scenarioParams()
	p2.DemandTail = model.DemandTailStockout
	st, err := newOptimizer(t, p2).Run(0, 2)
	require.NoError(t, err)
	assert.Greater(t, st.Value, tr.Value, "folding the tail back in only adds sales")
}

func TestRun_MemoizationTransparent(t *testing.T) {
	p := scenarioParams()
	p.Horizon = 6
	p.Inventory = 8
	o := newOptimizer(t, p)

	first, err := o.Run(0, 8)
	require.NoError(t, err)
	hits := o.Stats().CacheHits

	second, err := o.Run(0, 8)
	require.NoError(t, err)

	assert.Equal(t, math.Float64bits(first.Value), math.Float64bits(second.Value))
	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, hits+1, o.Stats().CacheHits)
}

func TestSolve_MatchesRecursive(t *testing.T) {
	p := scenarioParams()
	p.Horizon = 5
	p.Inventory = 6
	p.Coefficients = []float64{0.5, -0.2, -1.5, 0, 0.1, -0.05, 0.01}

	rec := newOptimizer(t, p)
	bottomUp := newOptimizer(t, p)
	bottomUp.Solve()

	for tt := 0; tt <= p.Horizon; tt++ {
		for n := 0; n <= p.Inventory; n++ {
			want, err := rec.Run(tt, n)
			require.NoError(t, err)
			got, err := bottomUp.Run(tt, n)
			require.NoError(t, err)
			assert.Equal(t, want, got, "t=%d n=%d", tt, n)
		}
	}
	assert.Equal(t, (p.Horizon+1)*(p.Inventory+1), bottomUp.Stats().StatesComputed)
}

func TestRun_VisitsEachStateOnce(t *testing.T) {
	p := scenarioParams()
	p.Horizon = 30
	p.Inventory = 20
	o := newOptimizer(t, p)

	_, err := o.Run(0, 20)
	require.NoError(t, err)

	s := o.Stats()
	assert.Equal(t, 31*21, s.States)
	assert.LessOrEqual(t, s.StatesComputed, s.States)
	assert.Greater(t, s.CacheHits, 0)
}

func TestRun_SalvageMonotonicity(t *testing.T) {
	low := scenarioParams()
	low.Horizon = 3
	low.Inventory = 5
	high := low.Clone()
	high.SalvageValue = 1.5

	lo := newOptimizer(t, low)
	hi := newOptimizer(t, high)
	for n := 1; n <= low.Inventory; n++ {
		a, err := lo.Run(low.Horizon-1, n)
		require.NoError(t, err)
		b, err := hi.Run(high.Horizon-1, n)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.Value, a.Value, "n=%d", n)
	}
}

func TestRun_FirstMaximizerWins(t *testing.T) {
	p := scenarioParams()
	p.PriceGrid = []float64{2.0, 1.0, 2.0}
	o := newOptimizer(t, p)

	d, err := o.Run(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d.Price)
}

func TestRun_NoProfitablePrice(t *testing.T) {
	p := scenarioParams()
	p.HoldingCost = 100
	o := newOptimizer(t, p)

	d, err := o.Run(0, 2)
	require.NoError(t, err)
	assert.Equal(t, model.Decision{}, d)
}

func TestRun_Bounds(t *testing.T) {
	o := newOptimizer(t, scenarioParams())

	for _, st := range []model.State{{T: -1, N: 0}, {T: 0, N: -1}, {T: 3, N: 0}, {T: 0, N: 3}} {
		_, err := o.Run(st.T, st.N)
		var be *BoundsError
		require.True(t, errors.As(err, &be), "state %+v", st)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.Equal(t, st.T, be.T)
		assert.Equal(t, st.N, be.N)
	}
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.PricingParams)
	}{
		{"empty competitors", func(p *model.PricingParams) { p.CompetitorPrices = nil }},
		{"empty price grid", func(p *model.PricingParams) { p.PriceGrid = nil }},
		{"short coefficients", func(p *model.PricingParams) { p.Coefficients = []float64{0} }},
		{"zero discount", func(p *model.PricingParams) { p.Discount = 0 }},
		{"negative horizon", func(p *model.PricingParams) { p.Horizon = -1 }},
		{"nan price", func(p *model.PricingParams) { p.PriceGrid = []float64{math.NaN()} }},
		{"unknown tail", func(p *model.PricingParams) { p.DemandTail = "fold" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioParams()
			tt.mutate(&p)
			_, err := New(p, zerolog.Nop())
			assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
		})
	}
}

func TestNew_ParamsAreCopied(t *testing.T) {
	p := scenarioParams()
	o := newOptimizer(t, p)

	p.PriceGrid[1] = 50
	p.CompetitorPrices[0] = 0.1

	got, err := o.Run(0, 2)
	require.NoError(t, err)
	want, err := newOptimizer(t, scenarioParams()).Run(0, 2)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, []float64{1.0, 2.0}, o.Params().PriceGrid)
}

func TestPolicy(t *testing.T) {
	p := scenarioParams()
	o := newOptimizer(t, p)
	pol := o.Policy()

	require.Equal(t, p.Horizon, pol.Horizon)
	require.Equal(t, p.Inventory, pol.Inventory)
	for tt := 0; tt <= p.Horizon; tt++ {
		for n := 0; n <= p.Inventory; n++ {
			want, err := o.Run(tt, n)
			require.NoError(t, err)
			got, ok := pol.At(tt, n)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	}
	_, ok := pol.At(3, 0)
	assert.False(t, ok)
}

func TestRun_LongHorizonSolvesIteratively(t *testing.T) {
	if testing.Short() {
		t.Skip("solves four million states")
	}
	p := scenarioParams()
	p.Horizon = 1_999_999
	p.Inventory = 1
	o := newOptimizer(t, p)

	d, err := o.Run(0, 1)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(d.Value) || math.IsInf(d.Value, 0))
	assert.Equal(t, 2.0, d.Price)

	s := o.Stats()
	assert.Equal(t, s.States, s.StatesComputed)
}

func TestRun_FillsOnlyRequestedStock(t *testing.T) {
	p := scenarioParams()
	p.Horizon = 5
	p.Inventory = 4
	o := newOptimizer(t, p)

	d, err := o.Run(3, 1)
	require.NoError(t, err)
	assert.Equal(t, (p.Horizon-3+1)*2, o.Stats().StatesComputed)

	full := newOptimizer(t, p)
	full.Solve()
	want, err := full.Run(3, 1)
	require.NoError(t, err)
	assert.Equal(t, want, d)
}
