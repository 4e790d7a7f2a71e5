package taikin

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexflint/go-filemutex"
	"github.com/tidwall/buntdb"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestDB(t *testing.T) *buntdb.DB {
	t.Helper()
	db, err := buntdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestLock(t *testing.T, name string) *filemutex.FileMutex {
	t.Helper()
	fm, err := filemutex.New(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("filemutex: %v", err)
	}
	t.Cleanup(func() { fm.Close() })
	return fm
}

// steppingClock returns a time source that advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func clk(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}
