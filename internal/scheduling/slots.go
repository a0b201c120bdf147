package scheduling

// EnumerateSlots lists every start minute at which a booking of the
// given duration fits entirely inside an available interval and
// entirely outside every busy interval. Candidate starts advance at
// step granularity from the beginning of each free interval, so a slot
// ending exactly where a busy interval begins is valid, and a slot
// starting exactly where a break ends is valid.
//
// notBefore excludes starts earlier than the given minute-of-day; pass
// a negative value when the whole day is eligible.
func EnumerateSlots(available, busy []Interval, durationMinutes, stepMinutes, notBefore int) []int {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return nil
	}

	var starts []int
	for _, avail := range available {
		for _, free := range Subtract(avail, busy) {
			for start := free.Start; start+durationMinutes <= free.End; start += stepMinutes {
				if start < notBefore {
					continue
				}
				starts = append(starts, start)
			}
		}
	}
	return starts
}
