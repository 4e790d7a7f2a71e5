package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"taikin/taikin"
)

type fakeSchedules struct {
	rs []taikin.Schedule
}

func (f *fakeSchedules) List(skip, limit int) ([]taikin.Schedule, error) {
	if skip >= len(f.rs) {
		return nil, nil
	}
	rs := f.rs[skip:]
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}
	return rs, nil
}

type fakeConfigs struct {
	cfg taikin.Configuration
}

func (f *fakeConfigs) Load() taikin.Configuration { return f.cfg }

func testSchedules() []taikin.Schedule {
	return []taikin.Schedule{
		{
			ID:                "b",
			DateEntered:       time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
			StartTime:         taikin.NewClock(8, 30),
			BreakStart:        taikin.NewClock(12, 0),
			BreakEnd:          taikin.NewClock(12, 20),
			ComputedDeparture: taikin.NewClock(16, 0),
		},
		{
			ID:                "a",
			DateEntered:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			StartTime:         taikin.NewClock(8, 0),
			BreakStart:        taikin.NewClock(12, 0),
			BreakEnd:          taikin.NewClock(12, 45),
			ComputedDeparture: taikin.NewClock(15, 55),
		},
	}
}

func TestViewRepositoryFlagsShortBreaks(t *testing.T) {
	repo := NewViewRepository(&fakeSchedules{rs: testSchedules()}, &fakeConfigs{cfg: taikin.DefaultConfiguration()})

	rows, err := repo.ListRows(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].ShortBreak || rows[1].ShortBreak {
		t.Fatalf("expected only the 20 minute break to be short: %+v", rows)
	}
	if rows[1].Date != "2024-03-01" {
		t.Fatalf("unexpected date %s", rows[1].Date)
	}
}

func TestTableViewer(t *testing.T) {
	var buf bytes.Buffer
	repo := NewViewRepository(&fakeSchedules{rs: testSchedules()}, &fakeConfigs{cfg: taikin.DefaultConfiguration()})

	if err := NewTableViewer(repo, &buf).Do(0, 1); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "16:00") || strings.Contains(out, "15:55") {
		t.Fatalf("expected only the newest schedule:\n%s", out)
	}
}

func TestRenderSummaryWithoutData(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, taikin.Summarize(nil))
	out := buf.String()
	if !strings.Contains(out, "--:--") {
		t.Fatalf("expected no-data marker:\n%s", out)
	}
	if strings.Contains(out, "00:00") {
		t.Fatalf("empty summary must not render midnight:\n%s", out)
	}
}

func TestScheduleTableHidesNegativeBreak(t *testing.T) {
	rs := testSchedules()[:1]
	rs[0].BreakStart, rs[0].BreakEnd = taikin.NewClock(12, 45), taikin.NewClock(12, 40)
	repo := NewViewRepository(&fakeSchedules{rs: rs}, &fakeConfigs{cfg: taikin.DefaultConfiguration()})

	var buf bytes.Buffer
	if err := NewTableViewer(repo, &buf).Do(0, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "-0:") || !strings.Contains(out, "--:--") {
		t.Fatalf("negative break must render as --:--:\n%s", out)
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	RenderChart(&buf, taikin.Project(testSchedules(), taikin.DefaultConfiguration()))
	out := buf.String()
	for _, want := range []string{"2024-03-01", "2024-03-02", "15:55", "45分"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in chart:\n%s", want, out)
		}
	}
	if strings.Index(out, "2024-03-01") > strings.Index(out, "2024-03-02") {
		t.Fatalf("chart must be chronological:\n%s", out)
	}
}

func TestBuildPatchOnlyCarriesChanges(t *testing.T) {
	s := testSchedules()[1]
	p := buildPatch(s, "08:00", "12:10", "12:45")
	if p.StartTime != nil || p.BreakEnd != nil {
		t.Fatalf("unchanged fields must stay nil: %+v", p)
	}
	if p.BreakStart == nil || *p.BreakStart != "12:10" {
		t.Fatalf("expected break start patch, got %+v", p)
	}
}
