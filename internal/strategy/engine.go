package strategy

import (
	"fmt"

	"RoundSentinel/internal/calculator"
	"RoundSentinel/internal/model"
)

// Tiers defines the entry zone for each MSI level. Pullback and Neutral are
// decided in mapTier because their bounds are not a simple minimum.
var Tiers = []struct {
	MinMSI float64
	Tier   model.ZoneTier
}{
	{6, model.ZoneTier{Zone: model.ZonePink, Advice: "strong entry"}},
	{3, model.ZoneTier{Zone: model.ZonePurple, Advice: "moderate entry"}},
}

var (
	PullbackTier = model.ZoneTier{Zone: model.ZonePullback, Advice: "avoid entry"}
	NeutralTier  = model.ZoneTier{Zone: model.ZoneNeutral, Advice: "wait"}
	NoDataTier   = model.ZoneTier{Zone: model.ZoneNoData, Advice: "enter rounds"}
)

// PullbackMSI is the MSI at or below which entries are discouraged.
const PullbackMSI = -3

// mapTier maps an MSI value to its entry tier. An MSI still waiting for its
// window to fill is Neutral.
func mapTier(v model.MSIValue) model.ZoneTier {
	if !v.Ready {
		return NeutralTier
	}
	for _, t := range Tiers {
		if v.Value >= t.MinMSI {
			return t.Tier
		}
	}
	if v.Value <= PullbackMSI {
		return PullbackTier
	}
	return NeutralTier
}

// seriesTier returns NoData for an empty series and the tier of the latest
// value otherwise.
func seriesTier(msi []model.MSIValue) model.ZoneTier {
	if len(msi) == 0 {
		return NoDataTier
	}
	return mapTier(calculator.LatestMSI(msi))
}

// EntryZone classifies the latest value of an MSI series.
func EntryZone(msi []model.MSIValue) model.EntryZone {
	return seriesTier(msi).Zone
}

// Evaluate builds the signal for the current MSI series and danger zones.
func Evaluate(msi []model.MSIValue, dangers []int) *model.Signal {
	latest := calculator.LatestMSI(msi)
	signal := &model.Signal{
		LatestMSI:   latest,
		Tier:        seriesTier(msi),
		Band:        ClassifyBand(latest),
		DangerCount: len(dangers),
		DangerScore: calculator.DangerScore(len(dangers)),
	}
	if len(dangers) > 0 {
		signal.WarningMsg = fmt.Sprintf("⚠️ TRAP PATTERNS DETECTED (%d)", len(dangers))
	}
	return signal
}
