package pricing

import (
	"fmt"

	"dynamic-pricing/internal/model"

	"gonum.org/v1/gonum/floats"
)

// SalesModel is a fitted logistic regression giving the probability that one
// customer arrival converts to a sale at a price in a period.
//
// Feature layout (model.FeatureCount entries):
//
//	[1, rank, price - min(competitors), |competitors|,
//	 (price + sum(competitors)) / (1 + |competitors|), t, t^2]
type SalesModel struct {
	competitors  []float64
	coefficients []float64

	minCompetitor float64
	sumCompetitor float64
}

func NewSalesModel(competitors, coefficients []float64) (*SalesModel, error) {
	if len(competitors) == 0 {
		return nil, fmt.Errorf("%w: sales model needs at least one competitor price", model.ErrInvalidConfiguration)
	}
	cs := append([]float64(nil), competitors...)
	return &SalesModel{
		competitors:   cs,
		coefficients:  append([]float64(nil), coefficients...),
		minCompetitor: floats.Min(cs),
		sumCompetitor: floats.Sum(cs),
	}, nil
}

// Features builds the regression input for price in period t.
func (m *SalesModel) Features(price float64, t int) []float64 {
	n := float64(len(m.competitors))
	return []float64{
		1,
		float64(CompetitorRank(price, m.competitors)),
		price - m.minCompetitor,
		n,
		(price + m.sumCompetitor) / (1 + n),
		float64(t),
		float64(t * t),
	}
}

// Probability returns the sale probability in (0, 1).
func (m *SalesModel) Probability(price float64, t int) float64 {
	return Sigmoid(DotProduct(m.Features(price, t), m.coefficients))
}
