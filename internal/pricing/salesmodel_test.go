package pricing

import (
	"testing"

	"dynamic-pricing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesModel_Features(t *testing.T) {
	m, err := NewSalesModel([]float64{1.5, 2.5}, make([]float64, model.FeatureCount))
	require.NoError(t, err)

	got := m.Features(2.0, 3)
	want := []float64{
		1,
		1,   // one competitor at or below 2.0
		0.5, // 2.0 - 1.5
		2,
		(2.0 + 4.0) / 3.0,
		3,
		9,
	}
	assert.Equal(t, want, got)
}

func TestSalesModel_Probability(t *testing.T) {
	t.Run("bias only is price independent", func(t *testing.T) {
		m, err := NewSalesModel([]float64{1.5}, []float64{0, 0, 0, 0, 0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, 0.5, m.Probability(1.0, 0))
		assert.Equal(t, 0.5, m.Probability(2.0, 1))
	})

	t.Run("negative price weight lowers probability", func(t *testing.T) {
		m, err := NewSalesModel([]float64{1.5}, []float64{1, 0, -2, 0, 0, 0, 0})
		require.NoError(t, err)
		assert.Greater(t, m.Probability(1.0, 0), m.Probability(2.0, 0))
		assert.InDelta(t, Sigmoid(1-2*(1.0-1.5)), m.Probability(1.0, 0), 1e-15)
	})
}

func TestSalesModel_RequiresCompetitors(t *testing.T) {
	_, err := NewSalesModel(nil, make([]float64, model.FeatureCount))
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestSalesModel_CopiesInputs(t *testing.T) {
	cs := []float64{1.5}
	coef := []float64{0, 0, 0, 0, 0, 0, 0}
	m, err := NewSalesModel(cs, coef)
	require.NoError(t, err)

	cs[0] = 100
	coef[0] = 5
	assert.Equal(t, 0.5, m.Probability(1.0, 0))
}
