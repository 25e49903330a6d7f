package simulate

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"
	"dynamic-pricing/internal/strategy"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Engine plays a strategy through one selling season with Poisson demand
// drawn from the same sale-probability model the optimizer uses.
type Engine struct {
	params model.PricingParams
	sales  *pricing.SalesModel
	log    zerolog.Logger
}

func New(params model.PricingParams, log zerolog.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := params.Clone()
	sales, err := pricing.NewSalesModel(p.CompetitorPrices, p.Coefficients)
	if err != nil {
		return nil, err
	}
	if log.GetLevel() == zerolog.Disabled {
		log = zerolog.Nop()
	}
	return &Engine{
		params: p,
		sales:  sales,
		log:    log.With().Str("component", "simulate").Logger(),
	}, nil
}

// NewRand returns the deterministic source used for a seeded run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run executes one season starting with initialInventory units.
func (e *Engine) Run(strat strategy.Strategy, initialInventory int, rng *rand.Rand) (*Result, error) {
	if strat == nil {
		return nil, errors.New("strategy is nil")
	}
	if rng == nil {
		return nil, errors.New("rng is nil")
	}
	if initialInventory < 0 || initialInventory > e.params.Inventory {
		return nil, fmt.Errorf("initial inventory %d outside [0, %d]", initialInventory, e.params.Inventory)
	}

	p := e.params
	ledger := make([]LedgerRow, 0, p.Horizon)
	inv := initialInventory
	last := 0.0
	cum := 0.0
	sold := 0

	for t := 0; t < p.Horizon; t++ {
		d := strat.Decide(strategy.Context{Period: t, Inventory: inv, LastPrice: last})
		if d.Price < 0 || math.IsNaN(d.Price) {
			return nil, fmt.Errorf("period %d: strategy %s returned invalid price %v", t, strat.Name(), d.Price)
		}

		row := LedgerRow{
			Period:         t,
			InventoryStart: inv,
			Price:          d.Price,
			Action:         model.ActionFromPrices(last, d.Price),
		}
		if inv > 0 && d.Price > 0 {
			row.SaleProbability = e.sales.Probability(d.Price, t)
			row.Lambda = p.MaxDemand * row.SaleProbability
			row.Demand = sampleDemand(row.Lambda, rng)
			row.UnitsSold = min(inv, row.Demand)
		}
		row.Revenue = float64(row.UnitsSold) * d.Price
		row.HoldingCost = float64(inv) * p.HoldingCost
		row.Profit = row.Revenue - row.HoldingCost
		row.DiscountedProfit = row.Profit * math.Pow(p.Discount, float64(t))

		inv -= row.UnitsSold
		sold += row.UnitsSold
		cum += row.DiscountedProfit
		row.InventoryEnd = inv
		row.CumProfit = cum
		ledger = append(ledger, row)

		if d.Price > 0 {
			last = d.Price
		}
	}

	salvage := float64(inv) * p.SalvageValue * math.Pow(p.Discount, float64(p.Horizon))
	return &Result{
		Ledger:      ledger,
		TotalProfit: cum + salvage,
		Salvage:     salvage,
		UnitsSold:   sold,
		Leftover:    inv,
	}, nil
}

// RunEpisodes repeats Run episodes times from one seed and summarizes the
// discounted profit distribution.
func (e *Engine) RunEpisodes(strat strategy.Strategy, initialInventory, episodes int, seed uint64) (Summary, error) {
	if episodes <= 0 {
		return Summary{}, fmt.Errorf("episodes must be > 0, got %d", episodes)
	}
	rng := NewRand(seed)
	profits := make([]float64, episodes)
	units := make([]float64, episodes)
	leftover := make([]float64, episodes)
	for i := 0; i < episodes; i++ {
		res, err := e.Run(strat, initialInventory, rng)
		if err != nil {
			return Summary{}, fmt.Errorf("episode %d: %w", i, err)
		}
		profits[i] = res.TotalProfit
		units[i] = float64(res.UnitsSold)
		leftover[i] = float64(res.Leftover)
	}

	sorted := append([]float64(nil), profits...)
	sort.Float64s(sorted)

	s := Summary{
		Strategy:      strat.Name(),
		Episodes:      episodes,
		MeanProfit:    stat.Mean(profits, nil),
		P05Profit:     stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P95Profit:     stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MeanUnitsSold: stat.Mean(units, nil),
		MeanLeftover:  stat.Mean(leftover, nil),
	}
	if episodes > 1 {
		s.StdDevProfit = stat.StdDev(profits, nil)
	}
	if initialInventory > 0 {
		s.SellThrough = s.MeanUnitsSold / float64(initialInventory)
	}
	e.log.Debug().
		Str("strategy", s.Strategy).
		Int("episodes", episodes).
		Float64("mean_profit", s.MeanProfit).
		Msg("simulation finished")
	return s, nil
}

// sampleDemand draws from Poisson(lambda) by inverting the cumulative mass.
func sampleDemand(lambda float64, rng *rand.Rand) int {
	u := rng.Float64()
	return max(0, pricing.PoissonQuantile(lambda, u)-1)
}
