package taikin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/tidwall/buntdb"
	"github.com/tidwall/gjson"
)

type ScheduleRepository interface {
	SaveSchedule(s Schedule) error
	GetSchedule(id string) (Schedule, error)
	DeleteSchedule(id string) (bool, error)

	// ListSchedules returns schedules newest first. limit <= 0 means no limit.
	ListSchedules(skip, limit int) ([]Schedule, error)
	// AllSchedules returns every readable schedule oldest first.
	AllSchedules() ([]Schedule, error)
}

const (
	scheduleKeyPrefix      = "schedule:"
	scheduleDateEnteredIdx = "schedule_date_entered"
)

func NewScheduleRepository(db *buntdb.DB, logger *slog.Logger) (ScheduleRepository, error) {
	err := db.CreateIndex(scheduleDateEnteredIdx, scheduleKeyPrefix+"*", lessByDateEntered)
	if err != nil && !errors.Is(err, buntdb.ErrIndexExists) {
		return nil, persistenceError("create schedule index", err)
	}
	return &scheduleRepository{db: db, logger: logger}, nil
}

// lessByDateEntered orders schedule values chronologically, ties broken by id.
// Values whose date does not parse sort first.
func lessByDateEntered(a, b string) bool {
	ta := gjson.Get(a, "date_entered").Time()
	tb := gjson.Get(b, "date_entered").Time()
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return gjson.Get(a, "id").String() < gjson.Get(b, "id").String()
}

type scheduleRepository struct {
	db     *buntdb.DB
	logger *slog.Logger
}

func scheduleKey(id string) string {
	return scheduleKeyPrefix + id
}

func (r *scheduleRepository) SaveSchedule(s Schedule) error {
	bs, err := json.Marshal(s)
	if err != nil {
		return persistenceError("encode schedule", err)
	}
	err = r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(scheduleKey(s.ID), string(bs), nil)
		return err
	})
	if err != nil {
		return persistenceError("save schedule", err)
	}
	return nil
}

func (r *scheduleRepository) GetSchedule(id string) (Schedule, error) {
	var v string
	err := r.db.View(func(tx *buntdb.Tx) error {
		var err error
		v, err = tx.Get(scheduleKey(id))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return Schedule{}, notFoundError("get schedule", id)
	} else if err != nil {
		return Schedule{}, persistenceError("get schedule", err)
	}

	var s Schedule
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		return Schedule{}, persistenceError("decode schedule "+id, err)
	}
	return s, nil
}

func (r *scheduleRepository) DeleteSchedule(id string) (bool, error) {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(scheduleKey(id))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, persistenceError("delete schedule", err)
	}
	return true, nil
}

func (r *scheduleRepository) ListSchedules(skip, limit int) ([]Schedule, error) {
	if skip < 0 {
		skip = 0
	}
	rs := make([]Schedule, 0)
	seen := 0
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.Descend(scheduleDateEnteredIdx, func(key, value string) bool {
			s, ok := r.decode(key, value)
			if !ok {
				return true
			}
			seen++
			if seen <= skip {
				return true
			}
			rs = append(rs, s)
			return limit <= 0 || len(rs) < limit
		})
	})
	if err != nil {
		return nil, persistenceError("list schedules", err)
	}
	return rs, nil
}

func (r *scheduleRepository) AllSchedules() ([]Schedule, error) {
	rs := make([]Schedule, 0)
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(scheduleDateEnteredIdx, func(key, value string) bool {
			if s, ok := r.decode(key, value); ok {
				rs = append(rs, s)
			}
			return true
		})
	})
	if err != nil {
		return nil, persistenceError("list schedules", err)
	}
	return rs, nil
}

// decode skips rows that no longer decode so one corrupt entry does not hide
// the rest of the history.
func (r *scheduleRepository) decode(key, value string) (Schedule, bool) {
	var s Schedule
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		r.logger.Warn("skip unreadable schedule",
			slog.String("key", key),
			slog.String("id", gjson.Get(value, "id").String()),
			slog.String("err", err.Error()),
		)
		return Schedule{}, false
	}
	if s.ID == "" {
		s.ID = strings.TrimPrefix(key, scheduleKeyPrefix)
	}
	return s, true
}
