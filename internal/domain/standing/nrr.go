package standing

import "math"

const ballsPerOver = 6

// NRR is the run rate for minus the run rate against, rounded to three decimals.
// A side with no balls on either ledger contributes zero to that component.
func NRR(runsScored, ballsFaced, runsConceded, ballsBowled int) float64 {
	return round(runRate(runsScored, ballsFaced)-runRate(runsConceded, ballsBowled), 3)
}

func runRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / (float64(balls) / ballsPerOver)
}

func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
