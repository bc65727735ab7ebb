package planner

import (
	"fmt"
	"math"
)

// Granularity is the step, in minutes, every allocation is snapped to
const Granularity = 5

// Round5 rounds minutes to the nearest multiple of Granularity (ties to even)
func Round5(minutes float64) int {
	if minutes <= 0 || math.IsNaN(minutes) {
		return 0
	}
	return int(math.RoundToEven(minutes/Granularity)) * Granularity
}

// Floor5 rounds minutes down to a multiple of Granularity
func Floor5(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return minutes - minutes%Granularity
}

// Ceil5 rounds minutes up to a multiple of Granularity
func Ceil5(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	if r := minutes % Granularity; r != 0 {
		return minutes + Granularity - r
	}
	return minutes
}

// FormatMinutes renders minutes as "Xh Ym" after snapping to Granularity.
// Non-positive values render as an empty string.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	m := Round5(float64(minutes))
	h, mm := m/60, m%60
	switch {
	case h > 0 && mm > 0:
		return fmt.Sprintf("%dh %dm", h, mm)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", mm)
	}
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
