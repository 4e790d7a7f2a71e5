package taikin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/buntdb"
)

const ConfigKey = "config"

// Locker is satisfied by *filemutex.FileMutex. It guards writes against other
// taikin processes sharing the same data directory.
type Locker interface {
	Lock() error
	Unlock() error
}

// ConfigLoader gives read access to the current configuration.
type ConfigLoader interface {
	Load() Configuration
}

// ConfigStore owns the singleton Configuration.
type ConfigStore struct {
	db     *buntdb.DB
	mux    sync.Mutex
	fm     Locker
	logger *slog.Logger
	now    func() time.Time
}

func NewConfigStore(db *buntdb.DB, fm Locker, logger *slog.Logger) *ConfigStore {
	return &ConfigStore{
		db:     db,
		fm:     fm,
		logger: logger,
		now:    time.Now,
	}
}

var errConfigAbsent = errors.New("config absent")

// Load returns the current configuration. It never fails: a missing or
// unreadable stored configuration is replaced by the defaults.
func (s *ConfigStore) Load() Configuration {
	cfg, err := s.read()
	if err == nil {
		return cfg
	}
	if !errors.Is(err, errConfigAbsent) {
		s.logger.Warn("stored config is unreadable, falling back to defaults", slog.String("err", err.Error()))
	}

	var loaded Configuration
	werr := s.withLock(func() error {
		// 別プロセスが先に初期化しているかもしれない
		if cfg, err := s.read(); err == nil {
			loaded = cfg
			return nil
		}
		loaded = DefaultConfiguration()
		loaded.UpdatedAt = s.now()
		return s.write(loaded)
	})
	if werr != nil {
		s.logger.Warn("failed to persist default config", slog.String("err", werr.Error()))
	}
	return loaded
}

// Update applies the non-nil fields of p. The merged result is validated
// before anything is written. A missing or malformed stored value is merged
// into the defaults; a failed read is returned as is.
func (s *ConfigStore) Update(p ConfigPatch) (Configuration, error) {
	var updated Configuration
	err := s.withLock(func() error {
		current, err := s.read()
		if KindOf(err) == KindPersistence {
			return err
		}
		if err != nil {
			if !errors.Is(err, errConfigAbsent) {
				s.logger.Warn("stored config is unreadable, merging into defaults", slog.String("err", err.Error()))
			}
			current = DefaultConfiguration()
		}

		candidate := p.apply(current)
		if err := candidate.Validate(); err != nil {
			return err
		}
		candidate.UpdatedAt = s.now()
		if err := s.write(candidate); err != nil {
			return err
		}
		updated = candidate
		return nil
	})
	if err != nil {
		return Configuration{}, err
	}

	s.logger.Info("config updated",
		slog.Int("work_hours", updated.WorkHours),
		slog.Int("work_minutes", updated.WorkMinutes),
		slog.Int("break_threshold_minutes", updated.BreakThresholdMinutes),
	)
	return updated, nil
}

// Reset overwrites the configuration with the defaults.
func (s *ConfigStore) Reset() (Configuration, error) {
	cfg := DefaultConfiguration()
	err := s.withLock(func() error {
		cfg.UpdatedAt = s.now()
		return s.write(cfg)
	})
	if err != nil {
		return Configuration{}, err
	}
	s.logger.Info("config reset")
	return cfg, nil
}

func (s *ConfigStore) withLock(fn func() error) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.fm != nil {
		if err := s.fm.Lock(); err != nil {
			return persistenceError("lock config", err)
		}
		defer s.fm.Unlock()
	}
	return fn()
}

func (s *ConfigStore) read() (Configuration, error) {
	var v string
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		v, err = tx.Get(ConfigKey)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return Configuration{}, errConfigAbsent
	} else if err != nil {
		return Configuration{}, persistenceError("read config", err)
	}

	var cfg Configuration
	if err := json.Unmarshal([]byte(v), &cfg); err != nil {
		return Configuration{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func (s *ConfigStore) write(cfg Configuration) error {
	bs, err := json.Marshal(cfg)
	if err != nil {
		return persistenceError("encode config", err)
	}
	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(ConfigKey, string(bs), nil)
		return err
	})
	if err != nil {
		return persistenceError("write config", err)
	}
	return nil
}
