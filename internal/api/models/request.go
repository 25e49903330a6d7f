package models

import "dynamic-pricing/internal/config"

// OptimizeRequest represents the request body for solving a pricing problem
type OptimizeRequest struct {
	// Market is an optional preset name from the market directory
	// (e.g. "widget" for widget.yaml). Pricing fields override it.
	Market  string               `json:"market,omitempty"`
	Pricing config.PricingConfig `json:"pricing"`

	// State defaults to (0, pricing.inventory).
	State         *StateRequest `json:"state,omitempty"`
	IncludePolicy bool          `json:"include_policy,omitempty"`
}

// StateRequest identifies one (period, inventory) state
type StateRequest struct {
	T int `json:"t"`
	N int `json:"n"`
}

// SimulateRequest represents a request to simulate one or more strategies
type SimulateRequest struct {
	Market     string                  `json:"market,omitempty"`
	Pricing    config.PricingConfig    `json:"pricing"`
	Strategies []config.StrategyConfig `json:"strategies,omitempty"` // default: optimal
	Simulation config.SimulationConfig `json:"simulation"`

	IncludeLedger bool `json:"include_ledger,omitempty"` // one sample season per strategy
}

// CurveRequest represents a request for the single-period demand curve
type CurveRequest struct {
	Market  string               `json:"market,omitempty"`
	Pricing config.PricingConfig `json:"pricing"`
	Period  int                  `json:"period,omitempty"`
}
