package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dynamic-pricing/internal/data"
	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load competitor prices, coefficients and a price grid from a
	// separate YAML preset (e.g. examples/markets/*.yaml).
	// If both MarketFile and Pricing set a field, Pricing wins.
	MarketFile string `yaml:"market_file"`
	// Optional: JSON competitor scrape; the latest price per competitor
	// replaces competitor_prices.
	CompetitorFile string `yaml:"competitor_file"`

	Pricing    PricingConfig    `yaml:"pricing"`
	Strategy   StrategyConfig   `yaml:"strategy"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// PricingConfig mirrors model.PricingParams. Pointer fields distinguish
// "unset" (take the default) from an explicit zero.
type PricingConfig struct {
	Name         string   `yaml:"name" json:"name,omitempty"`
	Horizon      int      `yaml:"horizon" json:"horizon"`
	Inventory    int      `yaml:"inventory" json:"inventory"`
	MaxDemand    *float64 `yaml:"max_demand" json:"max_demand,omitempty"`
	HoldingCost  *float64 `yaml:"holding_cost" json:"holding_cost,omitempty"`
	SalvageValue *float64 `yaml:"salvage_value" json:"salvage_value,omitempty"`
	Discount     *float64 `yaml:"discount" json:"discount,omitempty"`

	PriceGrid        []float64   `yaml:"price_grid" json:"price_grid,omitempty"`
	PriceRange       *PriceRange `yaml:"price_range" json:"price_range,omitempty"`
	CompetitorPrices []float64   `yaml:"competitor_prices" json:"competitor_prices,omitempty"`
	Coefficients     []float64   `yaml:"coefficients" json:"coefficients,omitempty"`

	DemandTail string `yaml:"demand_tail" json:"demand_tail,omitempty"`
}

// PriceRange expands to the grid Min, Min+Step, ..., <= Max.
type PriceRange struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name" json:"name"`
	Params map[string]any `yaml:"params" json:"params,omitempty"`
}

type SimulationConfig struct {
	Episodes int    `yaml:"episodes" json:"episodes,omitempty"`
	Seed     uint64 `yaml:"seed" json:"seed,omitempty"`
	// InitialInventory defaults to pricing.inventory.
	InitialInventory int `yaml:"initial_inventory" json:"initial_inventory,omitempty"`
}

const DefaultEpisodes = 1000

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.MarketFile != "" {
		loaded, err := LoadMarketFile(resolve(path, c.MarketFile))
		if err != nil {
			return nil, err
		}
		c.Pricing = MergePricing(loaded, c.Pricing)
	}
	if c.CompetitorFile != "" {
		f, err := data.LoadCompetitorJSON(resolve(path, c.CompetitorFile))
		if err != nil {
			return nil, err
		}
		if prices := data.LatestPrices(f); len(prices) > 0 {
			c.Pricing.CompetitorPrices = prices
		}
	}
	return &c, nil
}

// resolve interprets rel relative to the config file directory, falling
// back to the path as given (relative to cwd) if that doesn't exist.
func resolve(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	cand := filepath.Join(filepath.Dir(configPath), rel)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return rel
}

// ApplyDefaults fills unset simulation and strategy settings.
func (c *Config) ApplyDefaults() {
	if c.Strategy.Name == "" {
		c.Strategy.Name = "optimal"
	}
	if c.Simulation.Episodes == 0 {
		c.Simulation.Episodes = DefaultEpisodes
	}
	if c.Simulation.InitialInventory == 0 {
		c.Simulation.InitialInventory = c.Pricing.Inventory
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if !slices.Contains(strategy.Names, strings.ToLower(c.Strategy.Name)) {
		return fmt.Errorf("unsupported strategy: %q", c.Strategy.Name)
	}
	p, err := c.Pricing.ToModelParams()
	if err != nil {
		return fmt.Errorf("pricing config invalid: %w", err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("pricing config invalid: %w", err)
	}
	if c.Simulation.Episodes < 0 {
		return errors.New("simulation.episodes must be >= 0")
	}
	if c.Simulation.InitialInventory < 0 || c.Simulation.InitialInventory > p.Inventory {
		return fmt.Errorf("simulation.initial_inventory must be in [0, %d]", p.Inventory)
	}
	return nil
}

// ToModelParams converts the YAML shape into model parameters, applying the
// model defaults for unset fields. It does not validate.
func (pc PricingConfig) ToModelParams() (model.PricingParams, error) {
	p := model.DefaultPricingParams(pc.Horizon, pc.Inventory)
	if pc.MaxDemand != nil {
		p.MaxDemand = *pc.MaxDemand
	}
	if pc.HoldingCost != nil {
		p.HoldingCost = *pc.HoldingCost
	}
	if pc.SalvageValue != nil {
		p.SalvageValue = *pc.SalvageValue
	}
	if pc.Discount != nil {
		p.Discount = *pc.Discount
	}
	if pc.DemandTail != "" {
		p.DemandTail = model.DemandTail(strings.ToLower(pc.DemandTail))
	}

	p.PriceGrid = append([]float64(nil), pc.PriceGrid...)
	if len(p.PriceGrid) == 0 && pc.PriceRange != nil {
		grid, err := pc.PriceRange.Expand()
		if err != nil {
			return model.PricingParams{}, err
		}
		p.PriceGrid = grid
	}
	p.CompetitorPrices = append([]float64(nil), pc.CompetitorPrices...)
	p.Coefficients = append([]float64(nil), pc.Coefficients...)
	return p, nil
}

// maxGridSize bounds a price_range expansion.
const maxGridSize = 10000

func (r PriceRange) Expand() ([]float64, error) {
	if r.Step <= 0 {
		return nil, fmt.Errorf("%w: price_range.step must be > 0", model.ErrInvalidConfiguration)
	}
	if r.Max < r.Min {
		return nil, fmt.Errorf("%w: price_range.max below min", model.ErrInvalidConfiguration)
	}
	steps := math.Floor((r.Max-r.Min)/r.Step + 1e-9)
	if math.IsNaN(steps) || steps+1 > maxGridSize {
		return nil, fmt.Errorf("%w: price_range expands to more than %d prices", model.ErrInvalidConfiguration, maxGridSize)
	}
	count := int(steps) + 1
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Round((r.Min+float64(i)*r.Step)*1e6) / 1e6
	}
	return out, nil
}

type marketFileWrapper struct {
	Market PricingConfig `yaml:"market"`
}

// LoadMarketFile reads a market preset (competitors, coefficients, grid).
func LoadMarketFile(path string) (PricingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PricingConfig{}, err
	}
	var w marketFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PricingConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Market, nil
}

// MergePricing overlays set fields from override onto base.
// This is used when loading a market file and then applying overrides from
// the config or an API request.
func MergePricing(base, override PricingConfig) PricingConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	// Note: horizon/inventory 0 is a legal but useless problem, so zero is
	// treated as unset here.
	if override.Horizon != 0 {
		out.Horizon = override.Horizon
	}
	if override.Inventory != 0 {
		out.Inventory = override.Inventory
	}
	if override.MaxDemand != nil {
		out.MaxDemand = override.MaxDemand
	}
	if override.HoldingCost != nil {
		out.HoldingCost = override.HoldingCost
	}
	if override.SalvageValue != nil {
		out.SalvageValue = override.SalvageValue
	}
	if override.Discount != nil {
		out.Discount = override.Discount
	}
	if len(override.PriceGrid) > 0 {
		out.PriceGrid = override.PriceGrid
		out.PriceRange = nil
	} else if override.PriceRange != nil {
		out.PriceRange = override.PriceRange
		out.PriceGrid = nil
	}
	if len(override.CompetitorPrices) > 0 {
		out.CompetitorPrices = override.CompetitorPrices
	}
	if len(override.Coefficients) > 0 {
		out.Coefficients = override.Coefficients
	}
	if override.DemandTail != "" {
		out.DemandTail = override.DemandTail
	}
	return out
}
