package geo

import (
	"fmt"
	"math"
)

// FormatDistance renders a distance in meters the way every list row
// displays it: whole meters under a kilometer, one decimal above.
func FormatDistance(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders a duration in seconds as minutes, or hours and
// minutes past the hour. Durations always display at least one minute.
func FormatDuration(seconds float64) string {
	minutes := RoundMinutes(seconds)
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}

// RoundMinutes converts seconds to whole minutes, rounded to nearest,
// with a floor of one minute.
func RoundMinutes(seconds float64) int {
	m := int(math.Round(seconds / 60))
	if m < 1 {
		m = 1
	}
	return m
}
