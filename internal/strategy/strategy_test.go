package strategy

import (
	"testing"

	"dynamic-pricing/internal/model"
	"dynamic-pricing/internal/pricing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() model.PricingParams {
	p := model.DefaultPricingParams(4, 3)
	p.PriceGrid = []float64{1.0, 1.5, 2.0}
	p.CompetitorPrices = []float64{1.5, 1.8}
	p.Coefficients = []float64{1, 0, -1, 0, 0, 0, 0}
	return p
}

func TestOptimalStrategy_FollowsPolicy(t *testing.T) {
	p := testParams()
	s, err := NewOptimalStrategy(p, zerolog.Nop())
	require.NoError(t, err)

	opt, err := pricing.New(p, zerolog.Nop())
	require.NoError(t, err)

	for tt := 0; tt < p.Horizon; tt++ {
		for n := 0; n <= p.Inventory; n++ {
			want, err := opt.Run(tt, n)
			require.NoError(t, err)
			assert.Equal(t, want, s.Decide(Context{Period: tt, Inventory: n}))
		}
	}
	assert.Equal(t, model.Decision{}, s.Decide(Context{Period: 99, Inventory: 1}))
	assert.Equal(t, (p.Horizon+1)*(p.Inventory+1), s.Stats().StatesComputed)
}

func TestOptimalStrategy_InvalidParams(t *testing.T) {
	p := testParams()
	p.CompetitorPrices = nil
	_, err := NewOptimalStrategy(p, zerolog.Nop())
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestScheduleStrategy(t *testing.T) {
	s := &ScheduleStrategy{Grid: []float64{1.0, 1.5, 2.0}, Horizon: 4}

	assert.Equal(t, 2.0, s.Decide(Context{Period: 0, Inventory: 3}).Price)
	assert.Equal(t, 2.0, s.Decide(Context{Period: 1, Inventory: 3}).Price)
	assert.Equal(t, 1.0, s.Decide(Context{Period: 2, Inventory: 3}).Price)
	assert.Equal(t, 0.0, s.Decide(Context{Period: 3, Inventory: 0}).Price)
}

func TestScheduleStrategy_InvalidPanics(t *testing.T) {
	s := &ScheduleStrategy{Params: ScheduleParams{FullPrice: 1, MarkdownPrice: 2}, Grid: []float64{1}, Horizon: 2}
	assert.Panics(t, func() { s.Decide(Context{Inventory: 1}) })
}

func TestFixedStrategy(t *testing.T) {
	s := &FixedStrategy{Price: 1.25}
	assert.Equal(t, model.Decision{Price: 1.25}, s.Decide(Context{Inventory: 1}))
	assert.Equal(t, model.Decision{}, s.Decide(Context{Inventory: 0}))
}

func TestBuild(t *testing.T) {
	p := testParams()

	tests := []struct {
		name     string
		params   map[string]any
		wantName string
		wantErr  bool
	}{
		{name: "optimal", wantName: "optimal"},
		{name: "", wantName: "optimal"},
		{name: "fixed", params: map[string]any{"price": 1.5}, wantName: "fixed"},
		{name: "fixed", params: map[string]any{"price": -1}, wantErr: true},
		{name: "schedule", params: map[string]any{"markdown_start": 3}, wantName: "schedule"},
		{name: "schedule", params: map[string]any{"full_price": 1.0, "markdown_price": 2.0}, wantErr: true},
		{name: "oracle", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.name, tt.params, p, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}

func TestBuild_FixedDefaultsToTopOfGrid(t *testing.T) {
	s, err := Build("fixed", nil, testParams(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.(*FixedStrategy).Price)
}
