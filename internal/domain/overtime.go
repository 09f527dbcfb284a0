package domain

import "time"

// SliceOvertime converts the session's absolute instants to the local
// civil calendar and computes its overtime contribution per calendar
// date. A session spanning midnight contributes to every date it touches,
// which is why the result is a map rather than a single value. Only dates
// with strictly positive overtime appear.
func SliceOvertime(s Session, loc *time.Location, sched Schedule) map[string]float64 {
	daily := make(map[string]float64)

	start := s.Start.In(loc)
	end := s.End.In(loc)

	for day := localMidnight(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		// Civil 23:59:59, not midnight plus a fixed duration: DST days
		// are not 24 hours long.
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc)

		blockStart := laterOf(start, day)
		blockEnd := earlierOf(end, dayEnd)
		if !blockEnd.After(blockStart) {
			continue
		}

		secs := overtimeSeconds(sched, day, secondOfDay(blockStart), secondOfDay(blockEnd))
		if secs > 0 {
			daily[day.Format("2006-01-02")] += float64(secs) / 3600.0
		}
	}

	return daily
}

// overtimeSeconds computes the overtime portion of [start,end) on the
// given date by subtracting the regular work window, if one exists.
func overtimeSeconds(sched Schedule, date time.Time, start, end TimeOfDay) int {
	if sched.Classify(date) == ShiftWeekend {
		return int(end - start)
	}

	w, ok := sched.Window(date)
	if !ok {
		return int(end - start)
	}

	secs := 0
	if start < w.Start {
		before := minTimeOfDay(end, w.Start)
		secs += int(before - start)
	}
	if end > w.End {
		after := maxTimeOfDay(start, w.End)
		secs += int(end - after)
	}
	return secs
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func minTimeOfDay(a, b TimeOfDay) TimeOfDay {
	if a < b {
		return a
	}
	return b
}

func maxTimeOfDay(a, b TimeOfDay) TimeOfDay {
	if a > b {
		return a
	}
	return b
}
