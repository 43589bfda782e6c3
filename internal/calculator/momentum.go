package calculator

import "errors"

// SmoothingAlpha is the EWM factor applied to the momentum line for display.
const SmoothingAlpha = 0.75

// Momentum accumulates continuous round scores into a cumulative series
// seeded with zero.
type Momentum struct {
	series []float64
}

// NewMomentum creates an accumulator holding [0].
func NewMomentum() *Momentum {
	return &Momentum{series: []float64{0}}
}

// Append pushes last + ScoreRound(multiplier) and returns the new value.
func (m *Momentum) Append(multiplier float64) float64 {
	next := m.Last() + ScoreRound(multiplier)
	m.series = append(m.series, next)
	return next
}

// Last returns the latest cumulative value.
func (m *Momentum) Last() float64 {
	return m.series[len(m.series)-1]
}

// Len returns the series length, always one more than the rounds appended.
func (m *Momentum) Len() int { return len(m.series) }

// Series returns a copy of the cumulative series.
func (m *Momentum) Series() []float64 {
	out := make([]float64, len(m.series))
	copy(out, m.series)
	return out
}

// Reset reseeds the series to [0].
func (m *Momentum) Reset() {
	m.series = append(m.series[:0], 0)
}

// Rebuild replaces the series with one computed from scratch.
func (m *Momentum) Rebuild(multipliers []float64) {
	m.series = MomentumSeries(multipliers)
}

// MomentumSeries computes the cumulative momentum of multipliers from scratch.
func MomentumSeries(multipliers []float64) []float64 {
	series := make([]float64, len(multipliers)+1)
	for i, mult := range multipliers {
		series[i+1] = series[i] + ScoreRound(mult)
	}
	return series
}

// EWM computes the exponentially weighted mean of values using adjusted
// weights, so early points are not biased toward zero.
func EWM(values []float64, alpha float64) ([]float64, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, errors.New("alpha must be in (0, 1]")
	}
	out := make([]float64, len(values))
	decay := 1 - alpha
	var num, den float64
	for i, v := range values {
		num = num*decay + v
		den = den*decay + 1
		out[i] = num / den
	}
	return out, nil
}
