package domain

import "time"

type ShiftClass string

const (
	ShiftRegular           ShiftClass = "regular"
	ShiftAfternoon         ShiftClass = "afternoon"
	ShiftWeekend           ShiftClass = "weekend"
	ShiftSaturdayAfternoon ShiftClass = "saturday_afternoon"
)

// TimeOfDay is a clock time expressed as seconds since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, min int) TimeOfDay {
	return TimeOfDay(hour*3600 + min*60)
}

func (t TimeOfDay) Hour() int { return int(t) / 3600 }

func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

// Window is the time-of-day interval counted as regular (non-overtime)
// hours. Start is inclusive, End exclusive.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Schedule describes the recurring shift plan. The afternoon regime runs
// from AfternoonStart through AfternoonEnd (both inclusive) and repeats
// every CycleDays indefinitely. Dates before AfternoonStart never fall in
// an afternoon period.
//
// All boundaries are plain data so deployments with a different shift plan
// only need a different Schedule value.
type Schedule struct {
	AfternoonStart time.Time
	AfternoonEnd   time.Time
	CycleDays      int
	Windows        map[ShiftClass]Window
}

// DefaultSchedule returns the production shift plan: a six-day afternoon
// span anchored at Monday 2025-07-28, recurring every three weeks.
func DefaultSchedule() Schedule {
	return Schedule{
		AfternoonStart: time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
		AfternoonEnd:   time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		CycleDays:      21,
		Windows: map[ShiftClass]Window{
			ShiftRegular:           {Start: NewTimeOfDay(6, 0), End: NewTimeOfDay(15, 0)},
			ShiftAfternoon:         {Start: NewTimeOfDay(15, 0), End: NewTimeOfDay(21, 0)},
			ShiftSaturdayAfternoon: {Start: NewTimeOfDay(8, 0), End: NewTimeOfDay(14, 0)},
		},
	}
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
// Attribution buckets use this simple test, not the full classification.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// InAfternoonPeriod reports whether the date lies inside the afternoon
// recurrence cycle containing it.
func (s Schedule) InAfternoonPeriod(date time.Time) bool {
	d := dateOnly(date)
	daysSince := daysBetween(dateOnly(s.AfternoonStart), d)
	if daysSince < 0 {
		return false
	}
	cycle := daysSince / s.CycleDays
	cycleStart := dateOnly(s.AfternoonStart).AddDate(0, 0, cycle*s.CycleDays)
	cycleEnd := dateOnly(s.AfternoonEnd).AddDate(0, 0, cycle*s.CycleDays)
	return !d.Before(cycleStart) && !d.After(cycleEnd)
}

// Classify returns the shift class for a calendar date.
func (s Schedule) Classify(date time.Time) ShiftClass {
	if IsWeekend(date) {
		if date.Weekday() == time.Saturday && s.InAfternoonPeriod(date) {
			return ShiftSaturdayAfternoon
		}
		return ShiftWeekend
	}
	if s.InAfternoonPeriod(date) {
		return ShiftAfternoon
	}
	return ShiftRegular
}

// Window returns the regular-hours window for the date. Weekend days have
// no window: the whole day is overtime.
func (s Schedule) Window(date time.Time) (Window, bool) {
	w, ok := s.Windows[s.Classify(date)]
	return w, ok
}

// OvertimeAt reports whether the given local instant counts as overtime.
func (s Schedule) OvertimeAt(t time.Time) bool {
	w, ok := s.Window(t)
	if !ok {
		return true
	}
	sec := secondOfDay(t)
	return sec < w.Start || sec >= w.End
}

// dateOnly normalizes to midnight UTC so day arithmetic never crosses a
// DST transition.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func secondOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}
