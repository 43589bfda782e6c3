package calculator

import (
	"errors"

	"RoundSentinel/internal/model"
)

// CalculateMSI computes the trailing window sum of discrete scores.
// Positions before the window fills are returned with Ready=false.
func CalculateMSI(scores []int, window int) ([]model.MSIValue, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]model.MSIValue, len(scores))
	sum := 0
	for i, s := range scores {
		sum += s
		if i >= window {
			sum -= scores[i-window]
		}
		if i >= window-1 {
			out[i] = model.MSIValue{Value: float64(sum), Ready: true}
		}
	}
	return out, nil
}

// LatestMSI returns the last MSI value, or an unready value when empty.
func LatestMSI(msi []model.MSIValue) model.MSIValue {
	if len(msi) == 0 {
		return model.MSIValue{}
	}
	return msi[len(msi)-1]
}
