package taikin

import (
	"fmt"
	"time"
)

const (
	DefaultWorkHours             = 7
	DefaultWorkMinutes           = 10
	DefaultBreakThresholdMinutes = 45

	MaxWorkHours             = 12
	MaxWorkMinutes           = 59
	MaxBreakThresholdMinutes = 120
)

// WorkDuration is the effective working time per day.
type WorkDuration struct {
	Hours   int `json:"work_hours"`
	Minutes int `json:"work_minutes"`
}

func (w WorkDuration) TotalMinutes() int {
	return w.Hours*minutesPerHour + w.Minutes
}

func (w WorkDuration) String() string {
	return fmt.Sprintf("%dh%02d", w.Hours, w.Minutes)
}

// Configuration is the singleton policy governing departure computation.
// BreakThresholdMinutes is advisory and only used for display.
type Configuration struct {
	WorkHours             int       `json:"work_hours"`
	WorkMinutes           int       `json:"work_minutes"`
	BreakThresholdMinutes int       `json:"break_threshold_minutes"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		WorkHours:             DefaultWorkHours,
		WorkMinutes:           DefaultWorkMinutes,
		BreakThresholdMinutes: DefaultBreakThresholdMinutes,
	}
}

func (c Configuration) WorkDuration() WorkDuration {
	return WorkDuration{Hours: c.WorkHours, Minutes: c.WorkMinutes}
}

func (c Configuration) Validate() error {
	if c.WorkHours < 0 || c.WorkHours > MaxWorkHours {
		return validationError("validate config", fmt.Sprintf("work_hours must be between 0 and %d, got %d", MaxWorkHours, c.WorkHours))
	}
	if c.WorkMinutes < 0 || c.WorkMinutes > MaxWorkMinutes {
		return validationError("validate config", fmt.Sprintf("work_minutes must be between 0 and %d, got %d", MaxWorkMinutes, c.WorkMinutes))
	}
	if c.BreakThresholdMinutes < 0 || c.BreakThresholdMinutes > MaxBreakThresholdMinutes {
		return validationError("validate config", fmt.Sprintf("break_threshold_minutes must be between 0 and %d, got %d", MaxBreakThresholdMinutes, c.BreakThresholdMinutes))
	}
	return nil
}

// ConfigPatch holds a partial configuration update. Nil fields are left untouched.
type ConfigPatch struct {
	WorkHours             *int
	WorkMinutes           *int
	BreakThresholdMinutes *int
}

func (p ConfigPatch) IsEmpty() bool {
	return p.WorkHours == nil && p.WorkMinutes == nil && p.BreakThresholdMinutes == nil
}

func (p ConfigPatch) apply(c Configuration) Configuration {
	if p.WorkHours != nil {
		c.WorkHours = *p.WorkHours
	}
	if p.WorkMinutes != nil {
		c.WorkMinutes = *p.WorkMinutes
	}
	if p.BreakThresholdMinutes != nil {
		c.BreakThresholdMinutes = *p.BreakThresholdMinutes
	}
	return c
}
