package model

import "time"

// RoundType is the severity tier of a round's multiplier.
type RoundType string

const (
	RoundPink   RoundType = "Pink"
	RoundPurple RoundType = "Purple"
	RoundBlue   RoundType = "Blue"
)

// Round is one observed multiplier outcome.
type Round struct {
	Timestamp  time.Time
	Multiplier float64
	Score      int // discrete MSI score: -1, 1 or 2
	Type       RoundType
	// PinkAtEntry is the pink classification taken with the threshold in
	// effect when the round was recorded or last edited.
	PinkAtEntry bool
}

// Multipliers extracts the raw multiplier of every round.
func Multipliers(rounds []Round) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i] = r.Multiplier
	}
	return out
}

// Scores extracts the discrete score of every round.
func Scores(rounds []Round) []int {
	out := make([]int, len(rounds))
	for i, r := range rounds {
		out[i] = r.Score
	}
	return out
}
