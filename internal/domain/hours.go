package domain

import (
	"fmt"
	"math"
)

// FormatHours renders fractional hours as "H:MM". Total minutes are
// rounded, not truncated, so 0.508h is "0:30" and 1.999h is "2:00".
// Negative values keep the sign on the hour part only.
func FormatHours(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	h := totalMinutes / 60
	m := totalMinutes % 60
	if m < 0 {
		m = -m
	}
	return fmt.Sprintf("%d:%02d", h, m)
}
