package taikin

// Summary aggregates the schedule history. The mean fields are nil when no
// valid schedule exists, so "no data" is never mistaken for midnight.
type Summary struct {
	Count            int    `json:"count"`
	MeanArrival      *Clock `json:"mean_arrival"`
	MeanDeparture    *Clock `json:"mean_departure"`
	MeanBreakMinutes *int   `json:"mean_break_minutes"`
}

func (s Summary) IsEmpty() bool {
	return s.Count == 0
}

// Summarize computes floor averages over the valid schedules. Schedules with
// out-of-range clocks or a negative break are left out of both the sum and
// the count.
func Summarize(rs []Schedule) Summary {
	var arrival, departure, breaks, count int
	for _, r := range rs {
		if !r.IsValid() {
			continue
		}
		arrival += int(r.StartTime)
		departure += int(r.ComputedDeparture)
		breaks += r.BreakMinutes()
		count++
	}
	if count == 0 {
		return Summary{}
	}

	// 切り捨て平均 (四捨五入しない)
	meanArrival := Clock(arrival / count)
	meanDeparture := Clock(departure / count)
	meanBreak := breaks / count
	return Summary{
		Count:            count,
		MeanArrival:      &meanArrival,
		MeanDeparture:    &meanDeparture,
		MeanBreakMinutes: &meanBreak,
	}
}
