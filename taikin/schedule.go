package taikin

import "time"

// Schedule is one logged work day.
type Schedule struct {
	ID                string    `json:"id"`
	DateEntered       time.Time `json:"date_entered"`
	StartTime         Clock     `json:"start_time"`
	BreakStart        Clock     `json:"break_start"`
	BreakEnd          Clock     `json:"break_end"`
	ComputedDeparture Clock     `json:"computed_departure"`
	// Policy is the work duration that produced ComputedDeparture.
	Policy    WorkDuration `json:"policy"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (s Schedule) BreakMinutes() int {
	return int(s.BreakEnd - s.BreakStart)
}

// IsValid reports whether the record's clocks are structurally sound.
func (s Schedule) IsValid() bool {
	if !s.StartTime.IsTimeOfDay() || !s.BreakStart.IsTimeOfDay() || !s.BreakEnd.IsTimeOfDay() {
		return false
	}
	if s.BreakEnd < s.BreakStart {
		return false
	}
	return s.ComputedDeparture >= 0
}

// ScheduleInput is the user-supplied part of a new schedule, as "HH:MM" strings.
type ScheduleInput struct {
	StartTime  string
	BreakStart string
	BreakEnd   string
}

func (in ScheduleInput) parse() (start, breakStart, breakEnd Clock, err error) {
	if start, err = ParseClock(in.StartTime); err != nil {
		return
	}
	if breakStart, err = ParseClock(in.BreakStart); err != nil {
		return
	}
	breakEnd, err = ParseClock(in.BreakEnd)
	return
}

// SchedulePatch holds a partial schedule update. Nil fields are left untouched.
type SchedulePatch struct {
	StartTime  *string
	BreakStart *string
	BreakEnd   *string
}

func (p SchedulePatch) IsEmpty() bool {
	return p.StartTime == nil && p.BreakStart == nil && p.BreakEnd == nil
}
