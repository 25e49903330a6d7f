package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() PricingParams {
	p := DefaultPricingParams(4, 3)
	p.PriceGrid = []float64{1, 2}
	p.CompetitorPrices = []float64{1.5}
	p.Coefficients = make([]float64, FeatureCount)
	return p
}

func TestDefaultPricingParams(t *testing.T) {
	p := DefaultPricingParams(10, 5)
	assert.Equal(t, 10, p.Horizon)
	assert.Equal(t, 5, p.Inventory)
	assert.Equal(t, 10.0, p.MaxDemand)
	assert.Equal(t, 0.1, p.HoldingCost)
	assert.Equal(t, 0.5, p.SalvageValue)
	assert.Equal(t, 0.99, p.Discount)
	assert.Equal(t, DemandTailTruncate, p.DemandTail)
}

func TestPricingParams_Validate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	tests := []struct {
		name   string
		mutate func(p *PricingParams)
	}{
		{"negative inventory", func(p *PricingParams) { p.Inventory = -1 }},
		{"negative demand", func(p *PricingParams) { p.MaxDemand = -1 }},
		{"negative holding cost", func(p *PricingParams) { p.HoldingCost = -0.1 }},
		{"discount above one", func(p *PricingParams) { p.Discount = 1.01 }},
		{"no competitors", func(p *PricingParams) { p.CompetitorPrices = []float64{} }},
		{"no prices", func(p *PricingParams) { p.PriceGrid = []float64{} }},
		{"eight coefficients", func(p *PricingParams) { p.Coefficients = make([]float64, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestPricingParams_CloneIsDeep(t *testing.T) {
	p := validParams()
	p.DemandTail = ""
	c := p.Clone()
	c.PriceGrid[0] = 99
	assert.Equal(t, 1.0, p.PriceGrid[0])
	assert.Equal(t, DemandTailTruncate, c.DemandTail)
}

func TestActionFromPrices(t *testing.T) {
	assert.Equal(t, ActionHold, ActionFromPrices(0, 2))
	assert.Equal(t, ActionHold, ActionFromPrices(2, 2))
	assert.Equal(t, ActionMarkdown, ActionFromPrices(2, 1))
	assert.Equal(t, ActionMarkup, ActionFromPrices(1, 2))
	assert.Equal(t, ActionNone, ActionFromPrices(2, 0))
}

func TestPolicy_Rows(t *testing.T) {
	pol := NewPolicy(1, 2)
	pol.Set(1, 2, Decision{Price: 3, Value: 4})
	rows := pol.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 3)
	assert.Equal(t, Decision{Price: 3, Value: 4}, rows[1][2])
	assert.Equal(t, 3.0, pol.PriceAt(1, 2))
	assert.Equal(t, 0.0, pol.PriceAt(5, 5))
}
