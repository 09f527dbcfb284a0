package ledger

import (
	"time"

	"github.com/jarx/after15/internal/domain"
)

// Merge folds freshly computed day totals into the ledger and returns the
// number of day entries written.
//
// Policy per date: the current processing date is skipped outright (it is
// still accumulating and must never be finalized mid-day). Any other date
// is written only when no entry exists, the existing entry is not yet
// processed, or its hours equal exactly zero. The float equality against
// zero is intentional and mirrors the historical behavior; see DESIGN.md.
func Merge(f *File, totals domain.DayTotals, sched domain.Schedule, today string) int {
	f.Version = CurrentVersion

	updated := 0
	for dateStr, hours := range totals.Hours {
		if dateStr == today {
			continue
		}

		existing, exists := f.Days[dateStr]
		if exists && existing.Processed && existing.Hours != 0 {
			continue
		}

		f.Days[dateStr] = buildDayEntry(dateStr, hours, totals.Projects[dateStr], sched)
		updated++
	}

	RecomputeMonths(f)
	return updated
}

// Replace discards the existing ledger contents and rebuilds every day
// entry from the fresh totals. Used for full resynchronization. The
// current processing date is still skipped.
func Replace(totals domain.DayTotals, sched domain.Schedule, today string) *File {
	f := NewFile()
	for dateStr, hours := range totals.Hours {
		if dateStr == today {
			continue
		}
		f.Days[dateStr] = buildDayEntry(dateStr, hours, totals.Projects[dateStr], sched)
	}
	RecomputeMonths(f)
	return f
}

// RecomputeMonths rebuilds every month total from the current day
// entries. The recomputation is unconditional and full, never
// incremental, so month totals always match the day map exactly.
func RecomputeMonths(f *File) {
	f.Months = make(map[string]MonthEntry)
	for dateStr, entry := range f.Days {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		key := date.Format("2006-01")
		m := f.Months[key]
		m.TotalHours += entry.Hours
		f.Months[key] = m
	}
	for key, m := range f.Months {
		m.Formatted = domain.FormatHours(m.TotalHours)
		f.Months[key] = m
	}
}

func buildDayEntry(dateStr string, hours float64, projects map[string]domain.ProjectHours, sched domain.Schedule) DayEntry {
	entry := DayEntry{
		Hours:     hours,
		Formatted: domain.FormatHours(hours),
		Shift:     shiftName(dateStr, sched),
		Processed: true,
	}
	if len(projects) > 0 {
		entry.Projects = make(map[string]ProjectEntry, len(projects))
		for name, p := range projects {
			entry.Projects[name] = ProjectEntry{WeekdayHours: p.Weekday, WeekendHours: p.Weekend}
		}
	}
	return entry
}

func shiftName(dateStr string, sched domain.Schedule) string {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return string(domain.ShiftRegular)
	}
	return string(sched.Classify(date))
}
