package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentum_AppendAndReset(t *testing.T) {
	m := NewMomentum()
	assert.Equal(t, []float64{0}, m.Series())

	m.Append(1.0)  // -1.5
	m.Append(2.0)  // +1.0
	m.Append(20.0) // +3.0

	series := m.Series()
	require.Len(t, series, 4)
	assert.InDelta(t, -1.5, series[1], equalityThreshold)
	assert.InDelta(t, -0.5, series[2], equalityThreshold)
	assert.InDelta(t, 2.5, series[3], equalityThreshold)
	assert.InDelta(t, 2.5, m.Last(), equalityThreshold)

	m.Reset()
	assert.Equal(t, []float64{0}, m.Series())
	assert.Equal(t, 1, m.Len())
}

func TestMomentum_RebuildMatchesAppend(t *testing.T) {
	mults := []float64{1.2, 3.4, 12.0, 1.0, 25.0, 1.7}
	m := NewMomentum()
	for _, x := range mults {
		m.Append(x)
	}
	assert.Equal(t, MomentumSeries(mults), m.Series())

	rebuilt := NewMomentum()
	rebuilt.Rebuild(mults)
	assert.Equal(t, m.Series(), rebuilt.Series())
}

func TestMomentumSeries_Empty(t *testing.T) {
	assert.Equal(t, []float64{0}, MomentumSeries(nil))
}

func TestEWM(t *testing.T) {
	// alpha 0.5 over [0, 4]:
	// y0 = 0
	// y1 = (4 + 0.5*0) / (1 + 0.5) = 2.6667
	got, err := EWM([]float64{0, 4}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got[0], equalityThreshold)
	assert.InDelta(t, 8.0/3.0, got[1], 1e-6)

	flat, err := EWM([]float64{2, 2, 2}, SmoothingAlpha)
	require.NoError(t, err)
	for _, v := range flat {
		assert.InDelta(t, 2.0, v, equalityThreshold)
	}

	_, err = EWM([]float64{1}, 0)
	assert.Error(t, err)
}
