package taikin

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecomputePolicy selects which work duration is used when an update changes
// a schedule's times.
type RecomputePolicy int

const (
	// RecomputeWithCurrent uses the configuration in effect at update time.
	RecomputeWithCurrent RecomputePolicy = iota
	// RecomputeWithOriginal reuses the work duration stored on the schedule.
	RecomputeWithOriginal
)

type RecorderOption func(*ScheduleRecorder)

func WithRecomputePolicy(p RecomputePolicy) RecorderOption {
	return func(r *ScheduleRecorder) { r.policy = p }
}

func WithClock(now func() time.Time) RecorderOption {
	return func(r *ScheduleRecorder) { r.now = now }
}

// ScheduleRecorder owns the schedule collection and keeps every stored
// departure consistent with the policy that produced it.
type ScheduleRecorder struct {
	repo    ScheduleRepository
	configs ConfigLoader
	mux     sync.Mutex
	fm      Locker
	logger  *slog.Logger
	now     func() time.Time
	policy  RecomputePolicy
}

func NewScheduleRecorder(repo ScheduleRepository, configs ConfigLoader, fm Locker, logger *slog.Logger, opts ...RecorderOption) *ScheduleRecorder {
	r := &ScheduleRecorder{
		repo:    repo,
		configs: configs,
		fm:      fm,
		logger:  logger,
		now:     time.Now,
		policy:  RecomputeWithCurrent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ScheduleRecorder) Create(in ScheduleInput) (Schedule, error) {
	return r.CreateAt(in, r.now())
}

// CreateAt records a schedule entered at the given time.
func (r *ScheduleRecorder) CreateAt(in ScheduleInput, dateEntered time.Time) (Schedule, error) {
	start, breakStart, breakEnd, err := in.parse()
	if err != nil {
		return Schedule{}, err
	}

	work := r.configs.Load().WorkDuration()
	departure, err := ComputeDeparture(start, breakStart, breakEnd, work)
	if err != nil {
		return Schedule{}, err
	}

	now := r.now()
	s := Schedule{
		ID:                uuid.NewString(),
		DateEntered:       dateEntered,
		StartTime:         start,
		BreakStart:        breakStart,
		BreakEnd:          breakEnd,
		ComputedDeparture: departure,
		Policy:            work,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := r.withLock(func() error { return r.repo.SaveSchedule(s) }); err != nil {
		return Schedule{}, err
	}

	r.logger.Debug("schedule created",
		slog.String("id", s.ID),
		slog.String("start", s.StartTime.String()),
		slog.String("departure", s.ComputedDeparture.String()),
	)
	return s, nil
}

func (r *ScheduleRecorder) List(skip, limit int) ([]Schedule, error) {
	return r.repo.ListSchedules(skip, limit)
}

// All returns the whole history oldest first.
func (r *ScheduleRecorder) All() ([]Schedule, error) {
	return r.repo.AllSchedules()
}

func (r *ScheduleRecorder) Get(id string) (Schedule, error) {
	return r.repo.GetSchedule(id)
}

// Update applies the non-nil fields of p. When any time is supplied the
// departure is recomputed; the configuration is read once for the whole call.
func (r *ScheduleRecorder) Update(id string, p SchedulePatch) (Schedule, error) {
	var updated Schedule
	err := r.withLock(func() error {
		s, err := r.repo.GetSchedule(id)
		if err != nil {
			return err
		}
		if p.IsEmpty() {
			updated = s
			return nil
		}

		if err := applyClock(&s.StartTime, p.StartTime); err != nil {
			return err
		}
		if err := applyClock(&s.BreakStart, p.BreakStart); err != nil {
			return err
		}
		if err := applyClock(&s.BreakEnd, p.BreakEnd); err != nil {
			return err
		}

		work := s.Policy
		if r.policy == RecomputeWithCurrent {
			work = r.configs.Load().WorkDuration()
		}
		departure, err := ComputeDeparture(s.StartTime, s.BreakStart, s.BreakEnd, work)
		if err != nil {
			return err
		}
		s.ComputedDeparture = departure
		s.Policy = work
		s.UpdatedAt = r.now()

		if err := r.repo.SaveSchedule(s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return Schedule{}, err
	}

	r.logger.Debug("schedule updated",
		slog.String("id", updated.ID),
		slog.String("departure", updated.ComputedDeparture.String()),
		slog.String("policy", updated.Policy.String()),
	)
	return updated, nil
}

func (r *ScheduleRecorder) Delete(id string) (bool, error) {
	var deleted bool
	err := r.withLock(func() error {
		var err error
		deleted, err = r.repo.DeleteSchedule(id)
		return err
	})
	if err != nil {
		return false, err
	}
	if deleted {
		r.logger.Debug("schedule deleted", slog.String("id", id))
	}
	return deleted, nil
}

func (r *ScheduleRecorder) withLock(fn func() error) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if r.fm != nil {
		if err := r.fm.Lock(); err != nil {
			return persistenceError("lock schedules", err)
		}
		defer r.fm.Unlock()
	}
	return fn()
}

func applyClock(dst *Clock, v *string) error {
	if v == nil {
		return nil
	}
	c, err := ParseClock(*v)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}
