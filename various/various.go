package various

import "math"

// RoundToDecimals rounds the given float to the given number of decimals.
func RoundToDecimals(v, d float64) float64 {
	m := math.Pow(10, d)
	return math.Round(v*m) / m
}

// Clamp01 clamps the given value to the unit interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ConvToMap returns the given slice as a set.
func ConvToMap(vals []int) map[int]bool {
	res := make(map[int]bool, len(vals))
	for _, v := range vals {
		res[v] = true
	}
	return res
}
