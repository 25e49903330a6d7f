package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dynamic-pricing/internal/api/models"
	"dynamic-pricing/internal/config"
	"dynamic-pricing/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MarketHandler serves market presets and resolves them into pricing
// parameters for the other handlers.
type MarketHandler struct {
	marketDir string
	log       zerolog.Logger
}

// NewMarketHandler creates a market handler reading presets from dir.
func NewMarketHandler(dir string, log zerolog.Logger) *MarketHandler {
	if dir == "" {
		// Try to resolve relative to working directory first
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, "examples", "markets")
		} else {
			dir = "./examples/markets"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log = log.With().Str("component", "market_handler").Logger()
	log.Debug().Str("dir", dir).Msg("using market directory")
	return &MarketHandler{marketDir: dir, log: log}
}

// MarketDir returns the preset directory path
func (h *MarketHandler) MarketDir() string {
	return h.marketDir
}

// ListMarkets handles GET /api/v1/markets
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	markets := []models.MarketInfo{}

	entries, err := os.ReadDir(h.marketDir)
	if err != nil {
		h.log.Warn().Err(err).Str("dir", h.marketDir).Msg("failed to read market directory")
		c.JSON(http.StatusOK, gin.H{"markets": markets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(h.marketDir, entry.Name())
		pc, err := config.LoadMarketFile(path)
		if err != nil {
			h.log.Warn().Err(err).Str("file", path).Msg("skipping invalid market file")
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
		name := pc.Name
		if name == "" {
			name = id
		}
		grid := len(pc.PriceGrid)
		if grid == 0 && pc.PriceRange != nil {
			if g, err := pc.PriceRange.Expand(); err == nil {
				grid = len(g)
			}
		}
		markets = append(markets, models.MarketInfo{
			ID:          id,
			Name:        name,
			File:        path,
			Competitors: len(pc.CompetitorPrices),
			GridSize:    grid,
		})
	}

	c.JSON(http.StatusOK, gin.H{"markets": markets})
}

// Resolve merges the named preset (if any) with the request's pricing
// fields and validates the result.
func (h *MarketHandler) Resolve(market string, override config.PricingConfig) (model.PricingParams, error) {
	pc := override
	if strings.TrimSpace(market) != "" {
		base, err := config.LoadMarketFile(h.marketPath(market))
		if err != nil {
			return model.PricingParams{}, fmt.Errorf("%w: market %q: %v", model.ErrInvalidConfiguration, market, err)
		}
		pc = config.MergePricing(base, override)
	}
	p, err := pc.ToModelParams()
	if err != nil {
		return model.PricingParams{}, err
	}
	if err := p.Validate(); err != nil {
		return model.PricingParams{}, err
	}
	return p, nil
}

func (h *MarketHandler) marketPath(market string) string {
	name := filepath.Base(strings.TrimSpace(market))
	if !isYAML(name) {
		name += ".yaml"
	}
	return filepath.Join(h.marketDir, name)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
