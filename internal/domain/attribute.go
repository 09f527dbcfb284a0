package domain

import "time"

// ProjectHours splits a project's overtime by pay class.
type ProjectHours struct {
	Weekday float64
	Weekend float64
}

func (p ProjectHours) Total() float64 {
	return p.Weekday + p.Weekend
}

// SessionOvertime pairs a session with its per-date overtime hours as
// produced by SliceOvertime.
type SessionOvertime struct {
	Session Session
	Daily   map[string]float64
}

// DayTotals accumulates attributed overtime per calendar date, keyed by
// "2006-01-02" date strings.
type DayTotals struct {
	Hours    map[string]float64
	Projects map[string]map[string]ProjectHours
}

func NewDayTotals() DayTotals {
	return DayTotals{
		Hours:    make(map[string]float64),
		Projects: make(map[string]map[string]ProjectHours),
	}
}

// Attribute distributes each session's daily overtime across its real
// sources, weighted by event-count share. Event counts are a proxy for
// time spent since per-event durations are not recorded; the split is
// best-effort, not exact, and deliberately stays that way because the
// weighting model is user-visible in historical numbers.
//
// Transcript-only sessions fall back to the synthetic "unknown" project.
// When dateFilter is non-empty, entries for other dates are dropped
// entirely (used by the single-day explain query).
func Attribute(slices []SessionOvertime, dateFilter string) DayTotals {
	totals := NewDayTotals()

	for _, so := range slices {
		realCounts := make(map[string]int)
		totalReal := 0
		for source, count := range so.Session.SourceCounts {
			if source == SourceTranscripts {
				continue
			}
			realCounts[source] = count
			totalReal += count
		}

		for dateStr, hours := range so.Daily {
			if hours <= 0 {
				continue
			}
			if dateFilter != "" && dateStr != dateFilter {
				continue
			}

			totals.Hours[dateStr] += hours

			dayProjects, ok := totals.Projects[dateStr]
			if !ok {
				dayProjects = make(map[string]ProjectHours)
				totals.Projects[dateStr] = dayProjects
			}

			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				continue
			}
			weekend := IsWeekend(date)

			if totalReal == 0 {
				addProjectHours(dayProjects, SourceUnknown, hours, weekend)
				continue
			}
			for source, count := range realCounts {
				share := hours * float64(count) / float64(totalReal)
				addProjectHours(dayProjects, source, share, weekend)
			}
		}
	}

	return totals
}

func addProjectHours(projects map[string]ProjectHours, name string, hours float64, weekend bool) {
	p := projects[name]
	if weekend {
		p.Weekend += hours
	} else {
		p.Weekday += hours
	}
	projects[name] = p
}
