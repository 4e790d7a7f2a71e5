package taikin

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	valid := map[string]Clock{
		"00:00": 0,
		"08:05": 8*60 + 5,
		"8:05":  8*60 + 5,
		"23:59": 23*60 + 59,
	}
	for s, want := range valid {
		got, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", s, got, want)
		}
	}

	for _, s := range []string{"", "8", "08:5", "08:60", "24:00", "-1:00", "ab:cd", "08:00:00",
		"-0:30", "+8:00", "08:+5", "08:-5", "0008:00", "8:005", " 8:00x",
	} {
		if _, err := ParseClock(s); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseClock(%q): expected validation error, got %v", s, err)
		}
	}
}

func TestClockJSONKeepsLateDeparture(t *testing.T) {
	in := NewClock(25, 30)
	bs, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != `"25:30"` {
		t.Fatalf("unexpected json %s", bs)
	}
	var out Clock
	if err := json.Unmarshal(bs, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("expected %s, got %s", in, out)
	}
	if out.IsTimeOfDay() {
		t.Fatalf("25:30 must not be a time of day")
	}
}

func TestClockString(t *testing.T) {
	if got := ClockString(nil); got != "--:--" {
		t.Fatalf("expected --:--, got %s", got)
	}
	c := NewClock(7, 4)
	if got := ClockString(&c); got != "07:04" {
		t.Fatalf("expected 07:04, got %s", got)
	}
}
