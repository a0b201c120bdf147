package scheduling

import (
	"fmt"
	"sort"

	"github.com/coiffly/salon-api/pkg/errors"
)

// MinutesPerDay bounds every interval to one calendar day.
const MinutesPerDay = 24 * 60

// Interval is a half-open minute range [Start, End) within one day.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewInterval validates and builds an interval. Zero-length and
// inverted intervals are rejected.
func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > MinutesPerDay {
		return Interval{}, errors.Validation(
			fmt.Sprintf("interval [%d, %d) outside day range", start, end), nil)
	}
	if start >= end {
		return Interval{}, errors.Validation(
			fmt.Sprintf("interval start %d must be before end %d", start, end), nil)
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Contains reports whether the minute lies inside the interval.
func (i Interval) Contains(minute int) bool {
	return minute >= i.Start && minute < i.End
}

// Overlaps reports whether two half-open intervals share any minute.
// Touching boundaries do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Intersect returns the overlapping sub-interval of a and b, if any.
func Intersect(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Subtract removes every overlapping obstacle from a and returns the
// ordered remainder. Obstacles may overlap each other; they are sorted
// by start and walked once.
func Subtract(a Interval, obstacles []Interval) []Interval {
	if len(obstacles) == 0 {
		return []Interval{a}
	}

	sorted := make([]Interval, len(obstacles))
	copy(sorted, obstacles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var result []Interval
	cursor := a.Start
	for _, o := range sorted {
		if o.End <= cursor || o.Start >= a.End {
			continue
		}
		if o.Start > cursor {
			result = append(result, Interval{Start: cursor, End: o.Start})
		}
		if o.End > cursor {
			cursor = o.End
		}
	}
	if cursor < a.End {
		result = append(result, Interval{Start: cursor, End: a.End})
	}
	return result
}
