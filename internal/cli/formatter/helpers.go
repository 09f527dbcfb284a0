package formatter

import (
	"fmt"
	"strings"

	"github.com/jarx/after15/internal/domain"
)

// ShiftLabel returns the human-readable name of a shift class.
func ShiftLabel(class domain.ShiftClass) string {
	switch class {
	case domain.ShiftWeekend:
		return "Weekend"
	case domain.ShiftSaturdayAfternoon:
		return "Saturday (afternoon shift)"
	case domain.ShiftAfternoon:
		return "Afternoon"
	default:
		return "Regular"
	}
}

// WindowLabel describes which hours of the day count as overtime.
func WindowLabel(sched domain.Schedule, class domain.ShiftClass) string {
	w, ok := sched.Windows[class]
	if !ok {
		return "whole day"
	}
	return fmt.Sprintf("before %s and after %s", clock(w.Start), clock(w.End))
}

func clock(t domain.TimeOfDay) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// NormalizeProjectName maps a raw source label to a display name. Labels
// encoding a path under the tracked directory are reduced to the project
// directory name; bare labels pass through; unmatched path-style labels
// collapse to "other".
func NormalizeProjectName(raw, tracked string) string {
	if raw == "" {
		return "other"
	}
	marker := "-" + tracked + "-"
	if idx := strings.Index(raw, marker); idx >= 0 {
		name := strings.Trim(raw[idx+len(marker):], "-")
		if name == "" {
			return "other"
		}
		return name
	}
	if strings.HasPrefix(raw, "-") {
		return "other"
	}
	return raw
}
