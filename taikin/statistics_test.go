package taikin

import (
	"testing"
	"time"
)

func schedule(id string, day int, start, breakStart, breakEnd, departure Clock) Schedule {
	return Schedule{
		ID:                id,
		DateEntered:       time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC),
		StartTime:         start,
		BreakStart:        breakStart,
		BreakEnd:          breakEnd,
		ComputedDeparture: departure,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.IsEmpty() || s.MeanArrival != nil || s.MeanDeparture != nil || s.MeanBreakMinutes != nil {
		t.Fatalf("expected empty sentinel, got %+v", s)
	}
}

func TestSummarizeSingleSchedule(t *testing.T) {
	r := schedule("a", 1, NewClock(8, 7), NewClock(12, 3), NewClock(12, 51), NewClock(16, 5))
	s := Summarize([]Schedule{r})
	if s.Count != 1 {
		t.Fatalf("expected count 1, got %d", s.Count)
	}
	if *s.MeanArrival != r.StartTime || *s.MeanDeparture != r.ComputedDeparture || *s.MeanBreakMinutes != 48 {
		t.Fatalf("unexpected summary %s %s %d", s.MeanArrival, s.MeanDeparture, *s.MeanBreakMinutes)
	}
}

func TestSummarizeFloorsAverages(t *testing.T) {
	rs := []Schedule{
		schedule("a", 1, NewClock(8, 0), NewClock(12, 0), NewClock(12, 45), NewClock(15, 55)),
		schedule("b", 2, NewClock(8, 1), NewClock(12, 0), NewClock(12, 46), NewClock(15, 58)),
	}
	s := Summarize(rs)
	if s.MeanArrival.String() != "08:00" {
		t.Fatalf("expected mean arrival 08:00, got %s", s.MeanArrival)
	}
	if s.MeanDeparture.String() != "15:56" {
		t.Fatalf("expected mean departure 15:56, got %s", s.MeanDeparture)
	}
	if *s.MeanBreakMinutes != 45 {
		t.Fatalf("expected mean break 45, got %d", *s.MeanBreakMinutes)
	}
}

func TestSummarizeSkipsInvalidSchedules(t *testing.T) {
	good := schedule("a", 1, NewClock(9, 0), NewClock(12, 0), NewClock(12, 30), NewClock(16, 40))
	rs := []Schedule{
		good,
		schedule("negative-break", 2, NewClock(6, 0), NewClock(13, 0), NewClock(12, 0), NewClock(12, 10)),
		schedule("bad-start", 3, NewClock(24, 10), NewClock(12, 0), NewClock(12, 30), NewClock(20, 0)),
		schedule("bad-departure", 4, NewClock(7, 0), NewClock(12, 0), NewClock(12, 30), Clock(-5)),
	}
	s := Summarize(rs)
	if s.Count != 1 || *s.MeanArrival != good.StartTime || *s.MeanBreakMinutes != 30 {
		t.Fatalf("expected only the valid schedule to count, got %+v", s)
	}

	if s := Summarize(rs[1:]); !s.IsEmpty() || s.MeanArrival != nil {
		t.Fatalf("expected empty sentinel when nothing is valid, got %+v", s)
	}
}
