package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentChange calcula a variação percentual entre dois valores, tratando
// explicitamente a base zero: previous == 0 resulta em 100% se current > 0,
// senão 0% — nunca divide por zero
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return ((current - previous) / previous) * 100
}
