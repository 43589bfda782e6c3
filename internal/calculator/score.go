package calculator

import "RoundSentinel/internal/model"

// MidThreshold separates Purple from Blue rounds.
const MidThreshold = 2.0

// crashPenalty is the flat momentum penalty for rounds below 1.5x.
const crashPenalty = -1.5

// scoreCurve holds the control points of the continuous momentum scale.
var scoreCurve = []struct {
	Multiplier float64
	Score      float64
}{
	{1.5, -1.0},
	{2.0, 1.0},
	{5.0, 1.5},
	{10.0, 2.0},
	{20.0, 3.0},
}

// ScoreRound maps a multiplier onto the continuous momentum scale.
// Values past the last control point saturate at 3.0.
func ScoreRound(multiplier float64) float64 {
	if multiplier < scoreCurve[0].Multiplier {
		return crashPenalty
	}
	last := scoreCurve[len(scoreCurve)-1]
	if multiplier >= last.Multiplier {
		return last.Score
	}
	for i := 1; i < len(scoreCurve); i++ {
		lo, hi := scoreCurve[i-1], scoreCurve[i]
		if multiplier <= hi.Multiplier {
			frac := (multiplier - lo.Multiplier) / (hi.Multiplier - lo.Multiplier)
			return lo.Score + frac*(hi.Score-lo.Score)
		}
	}
	return last.Score
}

// DiscreteScore returns the MSI score of a multiplier: 2 for pink, 1 for
// purple, -1 otherwise.
func DiscreteScore(multiplier, pinkThreshold float64) int {
	switch {
	case multiplier >= pinkThreshold:
		return 2
	case multiplier >= MidThreshold:
		return 1
	default:
		return -1
	}
}

// ClassifyRound returns the severity tier of a multiplier.
func ClassifyRound(multiplier, pinkThreshold float64) model.RoundType {
	switch {
	case multiplier >= pinkThreshold:
		return model.RoundPink
	case multiplier >= MidThreshold:
		return model.RoundPurple
	default:
		return model.RoundBlue
	}
}

// DeriveRound fills Score and Type from the multiplier and threshold.
func DeriveRound(r model.Round, pinkThreshold float64) model.Round {
	r.Score = DiscreteScore(r.Multiplier, pinkThreshold)
	r.Type = ClassifyRound(r.Multiplier, pinkThreshold)
	return r
}
