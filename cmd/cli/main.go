package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dynamic-pricing/internal/analysis"
	"dynamic-pricing/internal/config"
	"dynamic-pricing/internal/logger"
	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"
	"dynamic-pricing/internal/simulate"
	"dynamic-pricing/internal/strategy"

	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	case "policy":
		cmdPolicy(os.Args[2:])
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "curve":
		cmdCurve(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli solve --config examples/config.yaml [--t 0 --n 20]")
	fmt.Println("  cli policy --config examples/config.yaml --out results/policy.csv")
	fmt.Println("  cli simulate --config examples/config.yaml [--episodes 1000 --seed 1 --out results/ledger.csv]")
	fmt.Println("  cli curve --config examples/config.yaml [--period 0]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - solve prints the optimal price and expected discounted profit for one state")
	fmt.Println("  - simulate compares the configured strategy against the optimal policy")
	fmt.Println("  - set LOG_LEVEL=debug for solver statistics")
}

type common struct {
	cfgPath *string
	pretty  *bool
}

func addCommon(fs *flag.FlagSet) common {
	return common{
		cfgPath: fs.String("config", "", "Path to YAML config"),
		pretty:  fs.Bool("pretty", true, "Human-readable log output"),
	}
}

func (c common) load() (*config.Config, model.PricingParams, zerolog.Logger) {
	log := logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), Pretty: *c.pretty})
	if *c.cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(*c.cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *c.cfgPath).Msg("failed to load config")
	}
	p, err := cfg.Pricing.ToModelParams()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid pricing config")
	}
	return cfg, p, log
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	c := addCommon(fs)
	t := fs.Int("t", 0, "Period index")
	n := fs.Int("n", -1, "Inventory on hand (default: pricing.inventory)")
	_ = fs.Parse(args)

	_, p, log := c.load()
	if *n < 0 {
		*n = p.Inventory
	}

	opt, err := pricing.New(p, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build optimizer")
	}
	d, err := opt.Run(*t, *n)
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}

	s := opt.Stats()
	fmt.Printf("state (t=%d, n=%d): price=%.4f expected_profit=%.4f\n", *t, *n, d.Price, d.Value)
	fmt.Printf("states solved=%d/%d cache hits=%d\n", s.StatesComputed, s.States, s.CacheHits)
}

func cmdPolicy(args []string) {
	fs := flag.NewFlagSet("policy", flag.ExitOnError)
	c := addCommon(fs)
	outPath := fs.String("out", "results/policy.csv", "Output CSV path")
	_ = fs.Parse(args)

	_, p, log := c.load()
	opt, err := pricing.New(p, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build optimizer")
	}
	pol := opt.Policy()

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output dir")
	}
	if err := simulate.WritePolicyCSV(*outPath, pol); err != nil {
		log.Fatal().Err(err).Msg("failed to write policy")
	}

	d, _ := pol.At(0, p.Inventory)
	fmt.Printf("Wrote %d states to %s\n", len(pol.Decisions), *outPath)
	fmt.Printf("Opening price=%.4f expected_profit=%.4f\n", d.Price, d.Value)
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	c := addCommon(fs)
	episodes := fs.Int("episodes", 0, "Monte-Carlo episodes (default: simulation.episodes)")
	seed := fs.Uint64("seed", 0, "RNG seed (default: simulation.seed)")
	outPath := fs.String("out", "", "Optional path to write one sample season ledger CSV")
	_ = fs.Parse(args)

	cfg, p, log := c.load()
	sim := cfg.Simulation
	if *episodes > 0 {
		sim.Episodes = *episodes
	}
	if *seed > 0 {
		sim.Seed = *seed
	}

	engine, err := simulate.New(p, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build simulator")
	}

	strats := []strategy.Strategy{}
	configured, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, p, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build strategy")
	}
	strats = append(strats, configured)
	if configured.Name() != "optimal" {
		optimal, err := strategy.NewOptimalStrategy(p, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build optimal strategy")
		}
		strats = append(strats, optimal)
	}

	fmt.Printf("%-10s %-8s %-12s %-12s %-12s %-12s %-10s\n", "strategy", "runs", "mean$", "stddev$", "p05$", "p95$", "sell-thru")
	for _, s := range strats {
		sum, err := engine.RunEpisodes(s, sim.InitialInventory, sim.Episodes, sim.Seed)
		if err != nil {
			log.Fatal().Err(err).Str("strategy", s.Name()).Msg("simulation failed")
		}
		fmt.Printf(
			"%-10s %-8d %-12.4f %-12.4f %-12.4f %-12.4f %-10.3f\n",
			sum.Strategy,
			sum.Episodes,
			sum.MeanProfit,
			sum.StdDevProfit,
			sum.P05Profit,
			sum.P95Profit,
			sum.SellThrough,
		)
	}

	if *outPath == "" {
		return
	}
	res, err := engine.Run(configured, sim.InitialInventory, simulate.NewRand(sim.Seed))
	if err != nil {
		log.Fatal().Err(err).Msg("sample season failed")
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output dir")
	}
	if err := simulate.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		log.Fatal().Err(err).Msg("failed to write ledger")
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Sample season profit=$%.2f sold=%d leftover=%d\n", res.TotalProfit, res.UnitsSold, res.Leftover)
}

func cmdCurve(args []string) {
	fs := flag.NewFlagSet("curve", flag.ExitOnError)
	c := addCommon(fs)
	period := fs.Int("period", 0, "Period index")
	_ = fs.Parse(args)

	_, p, log := c.load()
	points, err := analysis.DemandCurve(p, *period)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to compute demand curve")
	}

	ranked := analysis.RankByExpectedRevenue(points)
	fmt.Printf("%-4s %-10s %-6s %-10s %-10s %-10s %-12s\n", "rank", "price", "comp", "p(sale)", "lambda", "units", "revenue$")
	for i, pt := range ranked {
		fmt.Printf(
			"%-4d %-10.4f %-6d %-10.4f %-10.4f %-10.4f %-12.4f\n",
			i+1,
			pt.Price,
			pt.Rank,
			pt.SaleProbability,
			pt.Lambda,
			pt.ExpectedUnits,
			pt.ExpectedRevenue,
		)
	}
}
