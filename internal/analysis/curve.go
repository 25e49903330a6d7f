package analysis

import (
	"fmt"

	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"
)

// CurvePoint is the single-period demand response at one grid price. It
// ignores inventory limits and future periods, so it is a quick way to see
// where the sale-probability model puts the revenue peak.
type CurvePoint struct {
	Price float64 `json:"price"`
	Rank  int     `json:"rank"`

	SaleProbability float64 `json:"sale_probability"`
	Lambda          float64 `json:"lambda"`

	// ExpectedUnits is lambda capped at the inventory ceiling.
	ExpectedUnits   float64 `json:"expected_units"`
	ExpectedRevenue float64 `json:"expected_revenue"`

	// DemandCutoff is the truncation bound the optimizer sums demand up to.
	DemandCutoff int `json:"demand_cutoff"`
}

// DemandCurve evaluates every grid price in period t, in grid order.
func DemandCurve(p model.PricingParams, t int) ([]CurvePoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if t < 0 || t > p.Horizon {
		return nil, fmt.Errorf("period %d outside [0, %d]", t, p.Horizon)
	}
	m, err := pricing.NewSalesModel(p.CompetitorPrices, p.Coefficients)
	if err != nil {
		return nil, err
	}

	out := make([]CurvePoint, 0, len(p.PriceGrid))
	for _, price := range p.PriceGrid {
		prob := m.Probability(price, t)
		lambda := p.MaxDemand * prob
		units := expectedUnits(lambda, p.Inventory)
		out = append(out, CurvePoint{
			Price:           price,
			Rank:            pricing.CompetitorRank(price, p.CompetitorPrices),
			SaleProbability: prob,
			Lambda:          lambda,
			ExpectedUnits:   units,
			ExpectedRevenue: units * price,
			DemandCutoff:    pricing.PoissonQuantile(lambda, pricing.QuantileCutoff),
		})
	}
	return out, nil
}

// expectedUnits is E[min(D, n)] for D ~ Poisson(lambda).
func expectedUnits(lambda float64, n int) float64 {
	sum := 0.0
	cdf := 0.0
	for i := 0; i < n; i++ {
		pi := pricing.PoissonPDF(i, lambda)
		cdf += pi
		sum += float64(i) * pi
	}
	return sum + float64(n)*max(0, 1-cdf)
}
