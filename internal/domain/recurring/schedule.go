package recurring

import (
	"time"
)

// Schedule is the value view of a template's generation rule. The engine
// functions below are pure: they read only the fields of this struct and
// the injected reference date, never the wall clock.
type Schedule struct {
	Frequency       Frequency
	DayOfWeek       *int // 0=Sunday .. 6=Saturday, set for WEEKLY and BIWEEKLY
	DayOfMonth      *int // 1..28, set for MONTHLY
	StartDate       time.Time
	EndDate         *time.Time // inclusive
	LastGeneratedAt *time.Time
}

// DateOnly normalizes a timestamp to midnight UTC. All schedule
// arithmetic operates at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// NextOccurrence computes the next date on which the schedule fires, at
// or after the reference date. The result is the smallest date
// satisfying the frequency rule that is >= max(StartDate, ref) and not
// already covered by LastGeneratedAt. It returns nil when that date
// would exceed EndDate: the schedule is exhausted and the caller must
// stop generating. The schedule is assumed valid (see Template
// validation); the engine does not re-validate.
func NextOccurrence(s Schedule, ref time.Time) *time.Time {
	start := DateOnly(s.StartDate)
	base := maxDate(start, DateOnly(ref))

	var candidate time.Time
	switch s.Frequency {
	case FrequencyDaily:
		candidate = base
		if s.generatedOn(candidate) {
			candidate = candidate.AddDate(0, 0, 1)
		}

	case FrequencyWeekly:
		candidate = nextWeekday(base, *s.DayOfWeek)
		if s.generatedOn(candidate) {
			candidate = candidate.AddDate(0, 0, 7)
		}

	case FrequencyBiweekly:
		// Occurrences sit on a 14-day grid anchored at the first
		// matching weekday on or after the start date.
		anchor := nextWeekday(start, *s.DayOfWeek)
		candidate = nextWeekday(maxDate(anchor, base), *s.DayOfWeek)
		if off := daysBetween(anchor, candidate) % 14; off != 0 {
			candidate = candidate.AddDate(0, 0, 14-off)
		}
		if s.generatedOn(candidate) {
			candidate = candidate.AddDate(0, 0, 14)
		}

	case FrequencyMonthly:
		// DayOfMonth is capped at 28, so the slot exists in every month.
		candidate = time.Date(base.Year(), base.Month(), *s.DayOfMonth, 0, 0, 0, 0, time.UTC)
		if candidate.Before(base) {
			candidate = candidate.AddDate(0, 1, 0)
		}
		if s.generatedOn(candidate) {
			candidate = candidate.AddDate(0, 1, 0)
		}

	default:
		return nil
	}

	if s.EndDate != nil && candidate.After(DateOnly(*s.EndDate)) {
		return nil
	}
	return &candidate
}

// generatedOn reports whether the schedule already fired on the given day
func (s Schedule) generatedOn(day time.Time) bool {
	return s.LastGeneratedAt != nil && SameDay(*s.LastGeneratedAt, day)
}

// nextWeekday returns the soonest date >= base whose weekday equals
// dow (0=Sunday .. 6=Saturday).
func nextWeekday(base time.Time, dow int) time.Time {
	diff := (dow - int(base.Weekday()) + 7) % 7
	return base.AddDate(0, 0, diff)
}

// daysBetween returns the whole number of days from a to b. Both inputs
// must be date-normalized UTC values.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
