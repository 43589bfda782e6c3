package strategy

import "RoundSentinel/internal/model"

const (
	burstMSI = 6
	redMSI   = -6
)

// ClassifyBand returns the chart band of an MSI value.
func ClassifyBand(v model.MSIValue) model.MSIBand {
	if !v.Ready {
		return model.BandFlat
	}
	switch {
	case v.Value >= burstMSI:
		return model.BandBurst
	case v.Value <= redMSI:
		return model.BandRed
	case v.Value > 0:
		return model.BandSurge
	default:
		return model.BandFlat
	}
}

// Bands classifies every point of an MSI series.
func Bands(msi []model.MSIValue) []model.MSIBand {
	out := make([]model.MSIBand, len(msi))
	for i, v := range msi {
		out[i] = ClassifyBand(v)
	}
	return out
}
