package simulate

import "dynamic-pricing/internal/model"

// LedgerRow is one row of per-period output.
// This is the primary artifact for "what happened" in a simulated season.
type LedgerRow struct {
	Period int

	InventoryStart int
	InventoryEnd   int

	Price  float64
	Action model.Action

	SaleProbability float64
	Lambda          float64
	Demand          int
	UnitsSold       int

	Revenue     float64
	HoldingCost float64
	Profit      float64

	DiscountedProfit float64
	CumProfit        float64
}

type Result struct {
	Ledger []LedgerRow

	// TotalProfit is the discounted period profit plus discounted salvage.
	TotalProfit float64
	Salvage     float64
	UnitsSold   int
	Leftover    int
}

// Summary aggregates Monte-Carlo episodes.
type Summary struct {
	Strategy string `json:"strategy"`
	Episodes int    `json:"episodes"`

	MeanProfit   float64 `json:"mean_profit"`
	StdDevProfit float64 `json:"stddev_profit"`
	P05Profit    float64 `json:"p05_profit"`
	P95Profit    float64 `json:"p95_profit"`

	MeanUnitsSold float64 `json:"mean_units_sold"`
	MeanLeftover  float64 `json:"mean_leftover"`
	SellThrough   float64 `json:"sell_through"`
}
