package scheduling

import (
	"sort"
	"time"

	"github.com/coiffly/salon-api/internal/model"
)

// ResolveDaySchedule merges a staff member's weekly working hours, the
// salon's opening hours and absences into the ordered set of intervals
// the staff member is available on the given date.
//
// Working rows matching the date's day-of-week are taken as-is (split
// shifts allowed), breaks are cut out, the result is clipped to the
// salon opening interval for that weekday, and absent days collapse to
// nothing. Deterministic: same inputs, same output.
func ResolveDaySchedule(date time.Time, opening []model.OpeningHours, working []model.WorkingHours, absences []model.Absence) []Interval {
	for _, a := range absences {
		if a.Covers(date) {
			return nil
		}
	}

	dow := int(date.Weekday())

	open, ok := openingFor(opening, dow)
	if !ok {
		return nil
	}

	var result []Interval
	for _, w := range working {
		if w.DayOfWeek != dow {
			continue
		}
		shift, err := NewInterval(w.StartMinutes, w.EndMinutes)
		if err != nil {
			continue
		}

		pieces := []Interval{shift}
		if w.BreakStartMinutes != nil && w.BreakEndMinutes != nil {
			if brk, err := NewInterval(*w.BreakStartMinutes, *w.BreakEndMinutes); err == nil {
				pieces = Subtract(shift, []Interval{brk})
			}
		}

		for _, p := range pieces {
			if clipped, ok := Intersect(p, open); ok {
				result = append(result, clipped)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}

// openingFor picks the salon's active opening interval for a weekday.
func openingFor(opening []model.OpeningHours, dayOfWeek int) (Interval, bool) {
	for _, o := range opening {
		if o.DayOfWeek != dayOfWeek || !o.IsActive {
			continue
		}
		iv, err := NewInterval(o.OpenMinutes, o.CloseMinutes)
		if err != nil {
			continue
		}
		return iv, true
	}
	return Interval{}, false
}
