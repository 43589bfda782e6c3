package calculator

const (
	// DangerWindow is the number of consecutive rounds inspected per window.
	DangerWindow = 5
	// DangerMinLows is how many sub-2.0x rounds flag a window.
	DangerMinLows = 4
)

// DetectDangers flags every index i >= 4 whose window [i-4, i] holds at
// least four multipliers below 2.0. Windows overlap and are judged
// independently.
func DetectDangers(multipliers []float64) []int {
	dangers := []int{}
	lows := 0
	for i, m := range multipliers {
		if m < MidThreshold {
			lows++
		}
		if i >= DangerWindow && multipliers[i-DangerWindow] < MidThreshold {
			lows--
		}
		if i >= DangerWindow-1 && lows >= DangerMinLows {
			dangers = append(dangers, i)
		}
	}
	return dangers
}

// DangerScore converts a danger zone count into a 0-100 gauge.
func DangerScore(count int) int {
	score := count * 20
	if score > 100 {
		return 100
	}
	return score
}
