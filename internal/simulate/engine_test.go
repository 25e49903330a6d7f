package simulate

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"
	"dynamic-pricing/internal/strategy"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() model.PricingParams {
	p := model.DefaultPricingParams(3, 4)
	p.PriceGrid = []float64{1.0, 2.0}
	p.CompetitorPrices = []float64{1.5}
	p.Coefficients = []float64{0, 0, 0, 0, 0, 0, 0}
	return p
}

func newEngine(t *testing.T, p model.PricingParams) *Engine {
	t.Helper()
	e, err := New(p, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestRun_LedgerIsConsistent(t *testing.T) {
	p := testParams()
	e := newEngine(t, p)

	res, err := e.Run(&strategy.FixedStrategy{Price: 2.0}, 4, NewRand(7))
	require.NoError(t, err)
	require.Len(t, res.Ledger, p.Horizon)

	cum := 0.0
	inv := 4
	for _, r := range res.Ledger {
		assert.Equal(t, inv, r.InventoryStart)
		assert.LessOrEqual(t, r.UnitsSold, r.InventoryStart)
		assert.Equal(t, min(r.Demand, r.InventoryStart), r.UnitsSold)
		assert.InDelta(t, float64(r.UnitsSold)*2.0-float64(r.InventoryStart)*p.HoldingCost, r.Profit, 1e-12)
		cum += r.DiscountedProfit
		assert.InDelta(t, cum, r.CumProfit, 1e-12)
		inv = r.InventoryEnd
	}
	assert.Equal(t, inv, res.Leftover)
	assert.Equal(t, 4-inv, res.UnitsSold)
	assert.InDelta(t, cum+res.Salvage, res.TotalProfit, 1e-12)
}

func TestRun_Deterministic(t *testing.T) {
	e := newEngine(t, testParams())
	a, err := e.Run(&strategy.FixedStrategy{Price: 1.0}, 4, NewRand(42))
	require.NoError(t, err)
	b, err := e.Run(&strategy.FixedStrategy{Price: 1.0}, 4, NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_NoInventory(t *testing.T) {
	e := newEngine(t, testParams())
	res, err := e.Run(&strategy.FixedStrategy{Price: 1.0}, 0, NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalProfit)
	for _, r := range res.Ledger {
		assert.Equal(t, model.ActionNone, r.Action)
	}
}

func TestRun_RejectsBadInput(t *testing.T) {
	e := newEngine(t, testParams())

	_, err := e.Run(nil, 1, NewRand(1))
	assert.Error(t, err)
	_, err = e.Run(&strategy.FixedStrategy{Price: 1}, 5, NewRand(1))
	assert.Error(t, err)
	_, err = e.Run(&strategy.FixedStrategy{Price: 1}, 1, nil)
	assert.Error(t, err)
	_, err = e.Run(&strategy.FixedStrategy{Price: -1}, 1, NewRand(1))
	assert.Error(t, err)
}

func TestRunEpisodes_MatchesExactValue(t *testing.T) {
	// With the stock-out tail the optimizer's value is the exact expectation
	// of the season profit, so the Monte-Carlo mean must converge to it.
	p := testParams()
	p.DemandTail = model.DemandTailStockout

	opt, err := pricing.New(p, zerolog.Nop())
	require.NoError(t, err)
	want, err := opt.Run(0, p.Inventory)
	require.NoError(t, err)

	strat := strategy.NewPolicyStrategy(opt.Policy())
	sum, err := newEngine(t, p).RunEpisodes(strat, p.Inventory, 20000, 3)
	require.NoError(t, err)

	assert.Equal(t, "optimal", sum.Strategy)
	assert.Equal(t, 20000, sum.Episodes)
	assert.InDelta(t, want.Value, sum.MeanProfit, 0.1)
	assert.LessOrEqual(t, sum.P05Profit, sum.MeanProfit)
	assert.GreaterOrEqual(t, sum.P95Profit, sum.MeanProfit)
	assert.InDelta(t, sum.MeanUnitsSold/float64(p.Inventory), sum.SellThrough, 1e-12)
	assert.InDelta(t, float64(p.Inventory), sum.MeanUnitsSold+sum.MeanLeftover, 1e-9)
}

func TestRunEpisodes_RequiresEpisodes(t *testing.T) {
	_, err := newEngine(t, testParams()).RunEpisodes(&strategy.FixedStrategy{Price: 1}, 1, 0, 1)
	assert.Error(t, err)
}

func TestSampleDemand(t *testing.T) {
	rng := NewRand(9)
	assert.Equal(t, 0, sampleDemand(0, rng))

	total := 0
	const draws = 20000
	for i := 0; i < draws; i++ {
		total += sampleDemand(4, rng)
	}
	assert.InDelta(t, 4.0, float64(total)/draws, 0.1)
}

func TestWriteLedger(t *testing.T) {
	e := newEngine(t, testParams())
	res, err := e.Run(&strategy.FixedStrategy{Price: 2}, 4, NewRand(5))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, res.Ledger))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(res.Ledger)+1)
	assert.Equal(t, ledgerHeader, rows[0])
	assert.Equal(t, "0", rows[1][0])
}

func TestWritePolicyCSV(t *testing.T) {
	pol := model.NewPolicy(1, 1)
	pol.Set(0, 1, model.Decision{Price: 2, Value: 1.5})
	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, WritePolicyCSV(path, pol))
}
