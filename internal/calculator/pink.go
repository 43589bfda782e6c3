package calculator

import "RoundSentinel/internal/model"

// PinkZones lists the indices of pink rounds. In strict mode the
// classification frozen at entry is used, so later threshold changes do not
// move history; otherwise every round is judged against pinkThreshold.
func PinkZones(rounds []model.Round, pinkThreshold float64, strict bool) []int {
	zones := []int{}
	for i, r := range rounds {
		pink := r.PinkAtEntry
		if !strict {
			pink = r.Multiplier >= pinkThreshold
		}
		if pink {
			zones = append(zones, i)
		}
	}
	return zones
}
