package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"RoundSentinel/internal/model"
)

func ready(v float64) model.MSIValue { return model.MSIValue{Value: v, Ready: true} }

func TestMapTier_AllBoundaries(t *testing.T) {
	tests := []struct {
		msi  float64
		zone model.EntryZone
	}{
		{20, model.ZonePink},
		{6, model.ZonePink},
		{5, model.ZonePurple},
		{3, model.ZonePurple},
		{2, model.ZoneNeutral},
		{0, model.ZoneNeutral},
		{-2, model.ZoneNeutral},
		{-3, model.ZonePullback},
		{-20, model.ZonePullback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.zone, mapTier(ready(tt.msi)).Zone, "msi %.0f", tt.msi)
	}
}

func TestEntryZone_NoData(t *testing.T) {
	assert.Equal(t, model.ZoneNoData, EntryZone(nil))
	assert.Equal(t, model.ZoneNoData, EntryZone([]model.MSIValue{}))
	assert.Equal(t, "No Data", model.ZoneNoData.Label())
	assert.Equal(t, model.ZoneNoData, Evaluate(nil, nil).Tier.Zone)
}

func TestEntryZone_WindowFilling(t *testing.T) {
	assert.Equal(t, model.ZoneNeutral, EntryZone([]model.MSIValue{{}, {}}))
	assert.Equal(t, "Neutral Zone - Wait", EntryZone([]model.MSIValue{{}}).Label())

	sig := Evaluate([]model.MSIValue{{}, {}}, nil)
	assert.Equal(t, model.ZoneNeutral, sig.Tier.Zone)
	assert.False(t, sig.LatestMSI.Ready)
}

func TestEvaluate(t *testing.T) {
	sig := Evaluate([]model.MSIValue{{}, ready(7)}, []int{4, 5, 6})
	assert.Equal(t, model.ZonePink, sig.Tier.Zone)
	assert.Equal(t, model.BandBurst, sig.Band)
	assert.Equal(t, 3, sig.DangerCount)
	assert.Equal(t, 60, sig.DangerScore)
	assert.Contains(t, sig.WarningMsg, "(3)")

	calm := Evaluate([]model.MSIValue{ready(-1)}, nil)
	assert.Equal(t, model.ZoneNeutral, calm.Tier.Zone)
	assert.Empty(t, calm.WarningMsg)
}

func TestClassifyBand(t *testing.T) {
	tests := []struct {
		v    model.MSIValue
		band model.MSIBand
	}{
		{ready(6), model.BandBurst},
		{ready(5), model.BandSurge},
		{ready(1), model.BandSurge},
		{ready(0), model.BandFlat},
		{ready(-5), model.BandFlat},
		{ready(-6), model.BandRed},
		{model.MSIValue{}, model.BandFlat},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, ClassifyBand(tt.v), "msi %+v", tt.v)
	}
	assert.Len(t, Bands([]model.MSIValue{ready(1), ready(7)}), 2)
}
