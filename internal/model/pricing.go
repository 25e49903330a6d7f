package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is wrapped by every parameter validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// FeatureCount is the length of the sale-probability feature vector and
// therefore of the coefficient vector.
const FeatureCount = 7

// DemandTail selects how demand counts above the current inventory enter the
// per-period expectation.
type DemandTail string

const (
	// DemandTailTruncate drops the probability mass of demand counts greater
	// than the current inventory.
	DemandTailTruncate DemandTail = "truncate"
	// DemandTailStockout folds all demand >= inventory into a single
	// sell-out branch.
	DemandTailStockout DemandTail = "stockout"
)

// Defaults used by DefaultPricingParams.
const (
	DefaultMaxDemand    = 10.0
	DefaultHoldingCost  = 0.1
	DefaultSalvageValue = 0.5
	DefaultDiscount     = 0.99
)

// PricingParams defines the selling problem. Units:
// - Horizon: number of selling periods T
// - Inventory: starting / maximum units N
// - MaxDemand: per-period demand scale M (Poisson rate = M * sale probability)
// - HoldingCost: $ per unit on hand at the start of a period
// - SalvageValue: $ per unit left at the end of the horizon
// - Discount: per-period discount factor, 0 < delta <= 1
type PricingParams struct {
	Horizon      int
	Inventory    int
	MaxDemand    float64
	HoldingCost  float64
	SalvageValue float64
	Discount     float64

	PriceGrid        []float64
	CompetitorPrices []float64
	Coefficients     []float64

	DemandTail DemandTail
}

// DefaultPricingParams returns params for horizon T and inventory N with the
// default demand scale, costs and discount. Prices, competitors and
// coefficients are left empty.
func DefaultPricingParams(horizon, inventory int) PricingParams {
	return PricingParams{
		Horizon:      horizon,
		Inventory:    inventory,
		MaxDemand:    DefaultMaxDemand,
		HoldingCost:  DefaultHoldingCost,
		SalvageValue: DefaultSalvageValue,
		Discount:     DefaultDiscount,
		DemandTail:   DemandTailTruncate,
	}
}

func (p PricingParams) Validate() error {
	if p.Horizon < 0 {
		return invalid("horizon must be >= 0")
	}
	if p.Inventory < 0 {
		return invalid("inventory must be >= 0")
	}
	if !finite(p.MaxDemand) || p.MaxDemand < 0 {
		return invalid("max demand must be a finite number >= 0")
	}
	if !finite(p.HoldingCost) || p.HoldingCost < 0 {
		return invalid("holding cost must be a finite number >= 0")
	}
	if !finite(p.SalvageValue) {
		return invalid("salvage value must be finite")
	}
	if !finite(p.Discount) || p.Discount <= 0 || p.Discount > 1 {
		return invalid("discount must be in (0, 1]")
	}
	if len(p.PriceGrid) == 0 {
		return invalid("price grid is empty")
	}
	for i, v := range p.PriceGrid {
		if !finite(v) {
			return invalid(fmt.Sprintf("price grid[%d] is not finite", i))
		}
	}
	if len(p.CompetitorPrices) == 0 {
		return invalid("at least one competitor price is required")
	}
	for i, v := range p.CompetitorPrices {
		if !finite(v) {
			return invalid(fmt.Sprintf("competitor price[%d] is not finite", i))
		}
	}
	if len(p.Coefficients) != FeatureCount {
		return invalid(fmt.Sprintf("expected %d coefficients, got %d", FeatureCount, len(p.Coefficients)))
	}
	for i, v := range p.Coefficients {
		if !finite(v) {
			return invalid(fmt.Sprintf("coefficient[%d] is not finite", i))
		}
	}
	switch p.DemandTail {
	case "", DemandTailTruncate, DemandTailStockout:
	default:
		return invalid(fmt.Sprintf("unknown demand tail %q", p.DemandTail))
	}
	return nil
}

// Clone returns a deep copy so callers can't mutate slices behind an optimizer.
func (p PricingParams) Clone() PricingParams {
	out := p
	out.PriceGrid = append([]float64(nil), p.PriceGrid...)
	out.CompetitorPrices = append([]float64(nil), p.CompetitorPrices...)
	out.Coefficients = append([]float64(nil), p.Coefficients...)
	if out.DemandTail == "" {
		out.DemandTail = DemandTailTruncate
	}
	return out
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, msg)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
