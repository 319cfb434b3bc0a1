package grade

import "math"

// round2 rounds to 2 decimal places, halves away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// percent returns round(100 * part / whole) with halves rounded up; 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(part)/float64(whole) + 0.5))
}
