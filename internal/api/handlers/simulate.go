package handlers

import (
	"fmt"
	"net/http"

	"dynamic-pricing/internal/api/models"
	"dynamic-pricing/internal/config"
	"dynamic-pricing/internal/simulate"
	"dynamic-pricing/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MaxEpisodes bounds the Monte-Carlo episodes per strategy and request.
const MaxEpisodes = 100_000

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	markets *MarketHandler
	log     zerolog.Logger
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(markets *MarketHandler, log zerolog.Logger) *SimulateHandler {
	return &SimulateHandler{
		markets: markets,
		log:     log.With().Str("component", "simulate_handler").Logger(),
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	params, err := h.markets.Resolve(req.Market, req.Pricing)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}
	if err := checkStateSpace(params); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}

	cfg := config.Config{Simulation: req.Simulation}
	cfg.Pricing.Inventory = params.Inventory
	cfg.ApplyDefaults()
	sim := cfg.Simulation
	if sim.Episodes > MaxEpisodes {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", errEpisodes(sim.Episodes), nil)
		return
	}

	strategies := req.Strategies
	if len(strategies) == 0 {
		strategies = []config.StrategyConfig{{Name: "optimal"}}
	}

	engine, err := simulate.New(params, h.log)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}

	resp := models.SimulateResponse{Summaries: make([]simulate.Summary, 0, len(strategies))}
	if req.IncludeLedger {
		resp.Ledgers = make(map[string][]models.LedgerRow, len(strategies))
	}
	for i, sc := range strategies {
		strat, err := strategy.Build(sc.Name, sc.Params, params, h.log)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_STRATEGY", err, nil)
			return
		}
		summary, err := engine.RunEpisodes(strat, sim.InitialInventory, sim.Episodes, sim.Seed)
		if err != nil {
			writeError(c, http.StatusBadRequest, "SIMULATION_ERROR", err, nil)
			return
		}
		resp.Summaries = append(resp.Summaries, summary)

		if req.IncludeLedger {
			res, err := engine.Run(strat, sim.InitialInventory, simulate.NewRand(sim.Seed))
			if err != nil {
				writeError(c, http.StatusBadRequest, "SIMULATION_ERROR", err, nil)
				return
			}
			name := strat.Name()
			if _, dup := resp.Ledgers[name]; dup {
				name = fmt.Sprintf("%s#%d", name, i)
			}
			resp.Ledgers[name] = models.NewLedgerRows(res.Ledger)
		}
	}

	c.JSON(http.StatusOK, resp)
}
