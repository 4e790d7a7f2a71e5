package taikin

// ComputeDeparture returns start + work + (breakEnd - breakStart).
//
// The result is not wrapped at midnight: a late start with a long policy
// yields a departure such as 25:30.
func ComputeDeparture(start, breakStart, breakEnd Clock, work WorkDuration) (Clock, error) {
	breakMinutes, err := BreakMinutes(breakStart, breakEnd)
	if err != nil {
		return 0, err
	}
	return start + Clock(work.TotalMinutes()) + Clock(breakMinutes), nil
}

// BreakMinutes returns the length of the break window in minutes.
func BreakMinutes(breakStart, breakEnd Clock) (int, error) {
	d := int(breakEnd - breakStart)
	if d < 0 {
		return 0, validationError("compute departure", "negative break duration")
	}
	return d, nil
}
