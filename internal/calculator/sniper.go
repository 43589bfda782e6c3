package calculator

import "RoundSentinel/internal/model"

// sniperRanges are the inclusive minute gaps that link two pink rounds.
var sniperRanges = [][2]float64{
	{8, 12},
	{18, 22},
}

func inSniperRange(minutes float64) bool {
	for _, r := range sniperRanges {
		if minutes >= r[0] && minutes <= r[1] {
			return true
		}
	}
	return false
}

// ProjectSnipers scans every pink round against all earlier rounds and links
// those pink priors whose gap falls in a sniper range. When several priors
// qualify, the last one scanned is kept as ProjectedBy; every match is still
// returned as an edge.
func ProjectSnipers(rounds []model.Round) ([]model.Projection, []model.PinkProjection) {
	edges := []model.Projection{}
	pinks := []model.PinkProjection{}
	for i, r := range rounds {
		if r.Type != model.RoundPink {
			continue
		}
		pp := model.PinkProjection{Index: i, Round: r}
		for j := 0; j < i; j++ {
			prior := rounds[j]
			if prior.Type != model.RoundPink {
				continue
			}
			diff := r.Timestamp.Sub(prior.Timestamp).Minutes()
			if !inSniperRange(diff) {
				continue
			}
			ts := prior.Timestamp
			pp.ProjectedBy = &ts
			edges = append(edges, model.Projection{
				PriorIndex: j,
				LaterIndex: i,
				Prior:      prior.Timestamp,
				Later:      r.Timestamp,
			})
		}
		pinks = append(pinks, pp)
	}
	return edges, pinks
}
