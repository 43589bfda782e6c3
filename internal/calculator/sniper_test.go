package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoundSentinel/internal/model"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func round(minutes float64, mult float64) model.Round {
	r := model.Round{
		Timestamp:  base.Add(time.Duration(minutes * float64(time.Minute))),
		Multiplier: mult,
	}
	r = DeriveRound(r, 10.0)
	r.PinkAtEntry = r.Type == model.RoundPink
	return r
}

func TestProjectSnipers_TenMinuteGap(t *testing.T) {
	rounds := []model.Round{round(0, 12), round(10, 15)}
	edges, pinks := ProjectSnipers(rounds)

	require.Len(t, pinks, 2)
	assert.Nil(t, pinks[0].ProjectedBy)
	require.NotNil(t, pinks[1].ProjectedBy)
	assert.Equal(t, base, *pinks[1].ProjectedBy)
	assert.Equal(t, "12:00:00", pinks[1].ProjectedByLabel())

	require.Len(t, edges, 1)
	assert.Equal(t, 0, edges[0].PriorIndex)
	assert.Equal(t, 1, edges[0].LaterIndex)
}

func TestProjectSnipers_Ranges(t *testing.T) {
	tests := []struct {
		gap  float64
		want bool
	}{
		{7.9, false},
		{8, true},
		{12, true},
		{12.1, false},
		{15, false},
		{18, true},
		{22, true},
		{22.5, false},
	}
	for _, tt := range tests {
		_, pinks := ProjectSnipers([]model.Round{round(0, 11), round(tt.gap, 11)})
		assert.Equal(t, tt.want, pinks[1].ProjectedBy != nil, "gap %.1f", tt.gap)
	}
}

func TestProjectSnipers_LastMatchWins(t *testing.T) {
	// both t=0 and t=10 qualify for the round at t=20; the later prior is
	// scanned last and is kept
	rounds := []model.Round{round(0, 10), round(1, 1.2), round(10, 40), round(20, 10)}
	edges, pinks := ProjectSnipers(rounds)

	require.Len(t, pinks, 3)
	last := pinks[2]
	assert.Equal(t, 3, last.Index)
	require.NotNil(t, last.ProjectedBy)
	assert.Equal(t, base.Add(10*time.Minute), *last.ProjectedBy)
	assert.Len(t, edges, 3)
}

func TestProjectSnipers_IgnoresNonPinkPriors(t *testing.T) {
	rounds := []model.Round{round(0, 3.0), round(10, 10)}
	edges, pinks := ProjectSnipers(rounds)
	assert.Empty(t, edges)
	require.Len(t, pinks, 1)
	assert.Nil(t, pinks[0].ProjectedBy)
}

func TestPinkZones_StrictVersusCurrent(t *testing.T) {
	rounds := []model.Round{round(0, 10), round(1, 9.99), round(2, 15)}
	assert.Equal(t, []int{0, 2}, PinkZones(rounds, 10.0, true))

	// threshold raised later: strict keeps history, non-strict follows it
	assert.Equal(t, []int{0, 2}, PinkZones(rounds, 12.0, true))
	assert.Equal(t, []int{2}, PinkZones(rounds, 12.0, false))
}
