package models

import (
	"dynamic-pricing/internal/analysis"
	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"
	"dynamic-pricing/internal/simulate"
)

// OptimizeResponse represents the response from a solve
type OptimizeResponse struct {
	ID       string             `json:"id"`
	Cached   bool               `json:"cached"`
	State    StateRequest       `json:"state"`
	Decision model.Decision     `json:"decision"`
	Stats    *pricing.Stats     `json:"stats,omitempty"`
	Policy   [][]model.Decision `json:"policy,omitempty"` // [t][n]
}

// PolicyResponse represents a cached policy table
type PolicyResponse struct {
	ID        string             `json:"id"`
	Horizon   int                `json:"horizon"`
	Inventory int                `json:"inventory"`
	Policy    [][]model.Decision `json:"policy"` // [t][n]
}

// SimulateResponse represents the response from a simulation
type SimulateResponse struct {
	Summaries []simulate.Summary     `json:"summaries"`
	Ledgers   map[string][]LedgerRow `json:"ledgers,omitempty"`
}

// LedgerRow represents one period in a simulated season
type LedgerRow struct {
	Period           int     `json:"period"`
	InventoryStart   int     `json:"inventory_start"`
	Price            float64 `json:"price"`
	Action           string  `json:"action"` // "MARKUP", "HOLD", "MARKDOWN", "NONE"
	SaleProbability  float64 `json:"sale_probability"`
	Lambda           float64 `json:"lambda"`
	Demand           int     `json:"demand"`
	UnitsSold        int     `json:"units_sold"`
	Revenue          float64 `json:"revenue"`
	HoldingCost      float64 `json:"holding_cost"`
	Profit           float64 `json:"profit"`
	DiscountedProfit float64 `json:"discounted_profit"`
	CumProfit        float64 `json:"cum_profit"`
	InventoryEnd     int     `json:"inventory_end"`
}

func NewLedgerRows(ledger []simulate.LedgerRow) []LedgerRow {
	out := make([]LedgerRow, len(ledger))
	for i, r := range ledger {
		out[i] = LedgerRow{
			Period:           r.Period,
			InventoryStart:   r.InventoryStart,
			Price:            r.Price,
			Action:           string(r.Action),
			SaleProbability:  r.SaleProbability,
			Lambda:           r.Lambda,
			Demand:           r.Demand,
			UnitsSold:        r.UnitsSold,
			Revenue:          r.Revenue,
			HoldingCost:      r.HoldingCost,
			Profit:           r.Profit,
			DiscountedProfit: r.DiscountedProfit,
			CumProfit:        r.CumProfit,
			InventoryEnd:     r.InventoryEnd,
		}
	}
	return out
}

// CurveResponse represents the demand curve in grid order and ranked
type CurveResponse struct {
	Period int                   `json:"period"`
	Points []analysis.CurvePoint `json:"points"`
	Ranked []analysis.CurvePoint `json:"ranked"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// MarketInfo represents information about a market preset
type MarketInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	File        string `json:"file"`
	Competitors int    `json:"competitors"`
	GridSize    int    `json:"grid_size"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
