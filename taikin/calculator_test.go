package taikin

import (
	"errors"
	"testing"
)

func TestComputeDeparture(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		breakStart string
		breakEnd   string
		work       WorkDuration
		want       string
	}{
		{"default policy", "08:00", "12:00", "12:45", WorkDuration{7, 10}, "15:55"},
		{"longer policy", "08:00", "12:00", "12:45", WorkDuration{7, 30}, "16:30"},
		{"no break", "09:15", "12:00", "12:00", WorkDuration{8, 0}, "17:15"},
		{"zero policy", "10:00", "12:00", "12:30", WorkDuration{0, 0}, "10:30"},
		{"past midnight is not wrapped", "17:00", "20:00", "21:00", WorkDuration{7, 30}, "25:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDeparture(clk(t, tt.start), clk(t, tt.breakStart), clk(t, tt.breakEnd), tt.work)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestComputeDepartureNegativeBreak(t *testing.T) {
	work := WorkDuration{7, 10}
	for bs := Clock(0); bs < minutesPerDay; bs += 97 {
		for be := Clock(0); be < bs; be += 89 {
			_, err := ComputeDeparture(NewClock(8, 0), bs, be, work)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("break %s-%s: expected validation error, got %v", bs, be, err)
			}
		}
	}
}

func TestComputeDepartureIsDeterministic(t *testing.T) {
	work := WorkDuration{7, 10}
	a, err := ComputeDeparture(NewClock(8, 3), NewClock(12, 1), NewClock(12, 59), work)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ComputeDeparture(NewClock(8, 3), NewClock(12, 1), NewClock(12, 59), work)
	if a != b {
		t.Fatalf("expected identical results, got %s and %s", a, b)
	}
}
