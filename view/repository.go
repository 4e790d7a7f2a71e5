package view

import (
	"taikin/taikin"
)

type Viewer interface {
	Do(skip, limit int) error
}

// ScheduleSource is the read side of taikin.ScheduleRecorder.
type ScheduleSource interface {
	List(skip, limit int) ([]taikin.Schedule, error)
}

type ViewRepository interface {
	ListRows(skip, limit int) (scheduleRowsForView, error)
}

type viewRepository struct {
	schedules ScheduleSource
	configs   taikin.ConfigLoader
}

func NewViewRepository(schedules ScheduleSource, configs taikin.ConfigLoader) ViewRepository {
	return &viewRepository{schedules: schedules, configs: configs}
}

func (r *viewRepository) ListRows(skip, limit int) (scheduleRowsForView, error) {
	rs, err := r.schedules.List(skip, limit)
	if err != nil {
		return nil, err
	}
	// 閾値は表示時点の設定を使う
	threshold := r.configs.Load().BreakThresholdMinutes

	rows := make(scheduleRowsForView, 0, len(rs))
	for _, s := range rs {
		rows = append(rows, scheduleRowForView{
			Schedule:   s,
			Date:       taikin.DateOf(s.DateEntered),
			ShortBreak: s.BreakMinutes() < threshold,
		})
	}
	return rows, nil
}

type scheduleRowForView struct {
	Schedule   taikin.Schedule
	Date       taikin.Date
	ShortBreak bool
}

type scheduleRowsForView []scheduleRowForView
