package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-filemutex"
	"github.com/joho/godotenv"
	"github.com/tidwall/buntdb"
	"github.com/urfave/cli/v2"

	"taikin/taikin"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loadEnv()
	return newApp().Run(args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "taikin",
		Usage: "退勤時刻計算くん",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "data directory",
				EnvVars: []string{"TAIKIN_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"TAIKIN_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			configCommand,
			addCommand,
			listCommand,
			getCommand,
			editCommand,
			deleteCommand,
			statsCommand,
			chartCommand,
			viewCommand,
			exportCommand,
			importCommand,
		},
	}
}

// loadEnv reads .env from the working directory and the default data
// directory. Variables already set in the environment win.
func loadEnv() {
	_ = godotenv.Load()
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".taikin", ".env"))
	}
}

// env holds everything a command needs. Close releases the database and the
// log file.
type env struct {
	db       *buntdb.DB
	logger   *slog.Logger
	configs  *taikin.ConfigStore
	recorder *taikin.ScheduleRecorder
	out      io.Writer
	closers  []io.Closer
}

func openEnv(c *cli.Context) (*env, error) {
	dir, err := getTaikinDir(c.String("dir"))
	if err != nil {
		return nil, err
	}

	logger, logFile, err := newLogger(dir, c.String("log-level"))
	if err != nil {
		return nil, err
	}

	db, err := initDB(dir)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	e := &env{db: db, logger: logger, out: c.App.Writer, closers: []io.Closer{db, logFile}}

	configLock, err := newFileMutex(dir, "config.lock")
	if err != nil {
		e.Close()
		return nil, err
	}
	scheduleLock, err := newFileMutex(dir, "schedule.lock")
	if err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append(e.closers, configLock, scheduleLock)

	repo, err := taikin.NewScheduleRepository(db, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.configs = taikin.NewConfigStore(db, configLock, logger)
	e.recorder = taikin.NewScheduleRecorder(repo, e.configs, scheduleLock, logger)
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

func initDB(dir string) (*buntdb.DB, error) {
	db, err := buntdb.Open(filepath.Join(dir, "taikin.db"))
	if err != nil {
		return nil, err
	}
	return db, nil
}

func newLogger(dir, level string) (*slog.Logger, *os.File, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logFile, err := os.OpenFile(filepath.Join(dir, "log.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: lv,
		}),
	), logFile, nil
}

func newFileMutex(dir, name string) (*filemutex.FileMutex, error) {
	return filemutex.New(filepath.Join(dir, name))
}

func getTaikinDir(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".taikin")
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}
