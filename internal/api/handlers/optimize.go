package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"dynamic-pricing/internal/api/models"
	"dynamic-pricing/internal/data"
	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxStates bounds the (horizon+1)*(inventory+1) table a request may solve.
const MaxStates = 4_000_000

// OptimizeHandler handles pricing-optimization requests
type OptimizeHandler struct {
	markets *MarketHandler
	cache   *data.SolveCache
	log     zerolog.Logger
}

// NewOptimizeHandler creates a new optimize handler. cache may be nil.
func NewOptimizeHandler(markets *MarketHandler, cache *data.SolveCache, log zerolog.Logger) *OptimizeHandler {
	return &OptimizeHandler{
		markets: markets,
		cache:   cache,
		log:     log.With().Str("component", "optimize_handler").Logger(),
	}
}

// Optimize handles POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
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

	state := models.StateRequest{T: 0, N: params.Inventory}
	if req.State != nil {
		state = *req.State
	}

	key := data.CacheKey(params)
	if entry, ok := h.cache.Get(key); ok {
		d, ok := entry.Policy.At(state.T, state.N)
		if !ok {
			h.writeBounds(c, &pricing.BoundsError{T: state.T, N: state.N, Horizon: params.Horizon, Inventory: params.Inventory})
			return
		}
		resp := models.OptimizeResponse{ID: entry.ID, Cached: true, State: state, Decision: d}
		if req.IncludePolicy {
			resp.Policy = entry.Policy.Rows()
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	opt, err := pricing.New(params, h.log)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}
	d, err := opt.Run(state.T, state.N)
	if err != nil {
		h.writeBounds(c, err)
		return
	}

	resp := models.OptimizeResponse{ID: uuid.NewString(), State: state, Decision: d}
	if h.cache != nil || req.IncludePolicy {
		pol := opt.Policy()
		h.cache.Set(key, &data.SolveEntry{ID: resp.ID, Params: params, Policy: pol, Computed: opt.Stats().StatesComputed})
		if req.IncludePolicy {
			resp.Policy = pol.Rows()
		}
	}
	stats := opt.Stats()
	resp.Stats = &stats

	h.log.Info().
		Str("id", resp.ID).
		Int("t", state.T).
		Int("n", state.N).
		Float64("price", d.Price).
		Float64("value", d.Value).
		Msg("optimized")
	c.JSON(http.StatusOK, resp)
}

// GetPolicy handles GET /api/v1/optimize/:id/policy
func (h *OptimizeHandler) GetPolicy(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.cache.GetByID(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND",
			fmt.Errorf("no cached policy with id %q", id), nil)
		return
	}
	c.JSON(http.StatusOK, models.PolicyResponse{
		ID:        entry.ID,
		Horizon:   entry.Policy.Horizon,
		Inventory: entry.Policy.Inventory,
		Policy:    entry.Policy.Rows(),
	})
}

func (h *OptimizeHandler) writeBounds(c *gin.Context, err error) {
	var be *pricing.BoundsError
	if errors.As(err, &be) {
		writeError(c, http.StatusBadRequest, "OUT_OF_BOUNDS", err, map[string]interface{}{
			"t":         be.T,
			"n":         be.N,
			"horizon":   be.Horizon,
			"inventory": be.Inventory,
		})
		return
	}
	writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err, nil)
}

func checkStateSpace(p model.PricingParams) error {
	// Bound each side first so the product cannot overflow.
	if p.Horizon >= MaxStates || p.Inventory >= MaxStates || p.Horizon+1 > MaxStates/(p.Inventory+1) {
		return fmt.Errorf("%w: horizon %d x inventory %d exceeds the limit of %d states",
			model.ErrInvalidConfiguration, p.Horizon, p.Inventory, MaxStates)
	}
	return nil
}
