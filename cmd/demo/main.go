package main

import (
	"flag"
	"fmt"

	"dynamic-pricing/internal/config"
	"dynamic-pricing/internal/data"
	"dynamic-pricing/internal/logger"
	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/simulate"
	"dynamic-pricing/internal/strategy"
)

// Demo:
// - Build a small pricing problem (or load one from --config)
// - Solve the optimal policy
// - Play one simulated season to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	competitors := flag.String("competitors", "", "Optional competitor observation JSON; latest prices replace the defaults")
	seed := flag.Uint64("seed", 1, "RNG seed")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Pretty: true})

	// Defaults (can be overridden via --config).
	params := model.DefaultPricingParams(8, 20)
	params.PriceGrid = []float64{6, 7, 8, 9, 10, 11, 12}
	params.CompetitorPrices = []float64{8.5, 9.0, 10.5}
	params.Coefficients = []float64{2.0, -0.4, -0.3, -0.1, 0.0, 0.05, 0.0}
	var strat strategy.Strategy

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		params, err = cfg.Pricing.ToModelParams()
		if err != nil {
			panic(err)
		}
		if cfg.Strategy.Name != "optimal" {
			strat, err = strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, params, log)
			if err != nil {
				panic(err)
			}
		}
	}

	if *competitors != "" {
		f, err := data.LoadCompetitorJSON(*competitors)
		if err != nil {
			panic(err)
		}
		if prices := data.LatestPrices(f); len(prices) > 0 {
			params.CompetitorPrices = prices
		}
	}

	optimal, err := strategy.NewOptimalStrategy(params, log)
	if err != nil {
		panic(err)
	}
	if strat == nil {
		strat = optimal
	}

	engine, err := simulate.New(params, log)
	if err != nil {
		panic(err)
	}
	result, err := engine.Run(strat, params.Inventory, simulate.NewRand(*seed))
	if err != nil {
		panic(err)
	}

	opening, _ := optimal.Policy().At(0, params.Inventory)
	fmt.Printf("Horizon=%d Inventory=%d Grid=%v Competitors=%v\n", params.Horizon, params.Inventory, params.PriceGrid, params.CompetitorPrices)
	fmt.Printf("Strategy=%s\n", strat.Name())
	fmt.Printf("Optimal opening price=%.2f expected profit=%.2f\n\n", opening.Price, opening.Value)

	for _, r := range result.Ledger {
		fmt.Printf(
			"t=%-3d inv=%3d  price=%6.2f  action=%-8s  p=%.3f  demand=%3d  sold=%3d  profit=%8.2f  cum=%8.2f\n",
			r.Period,
			r.InventoryStart,
			r.Price,
			string(r.Action),
			r.SaleProbability,
			r.Demand,
			r.UnitsSold,
			r.Profit,
			r.CumProfit,
		)
	}

	if *outCSV != "" {
		if err := simulate.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Sold=%d Leftover=%d Salvage=$%.2f Total profit=$%.2f\n", result.UnitsSold, result.Leftover, result.Salvage, result.TotalProfit)
}
