package taikin

import "sort"

// TimePoint is one schedule's arrival or departure with the series mean.
type TimePoint struct {
	Date  Date  `json:"date"`
	Value Clock `json:"value"`
	Mean  Clock `json:"mean"`
}

type BreakPoint struct {
	Date           Date `json:"date"`
	Minutes        int  `json:"minutes"`
	BelowThreshold bool `json:"below_threshold"`
}

// Chart holds index-aligned series ready for a renderer.
type Chart struct {
	Arrivals       []TimePoint  `json:"arrivals"`
	Departures     []TimePoint  `json:"departures"`
	Breaks         []BreakPoint `json:"break_durations"`
	MeanArrival    *Clock       `json:"mean_arrival"`
	MeanDeparture  *Clock       `json:"mean_departure"`
	BreakThreshold int          `json:"break_threshold"`
}

func (c Chart) Dates() []Date {
	ds := make([]Date, len(c.Arrivals))
	for i, p := range c.Arrivals {
		ds[i] = p.Date
	}
	return ds
}

// Project builds chart series in chronological order. The break threshold
// comes from cfg, so a configuration change applies to every past point.
func Project(rs []Schedule, cfg Configuration) Chart {
	valid := make([]Schedule, 0, len(rs))
	for _, r := range rs {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if !valid[i].DateEntered.Equal(valid[j].DateEntered) {
			return valid[i].DateEntered.Before(valid[j].DateEntered)
		}
		return valid[i].ID < valid[j].ID
	})

	summary := Summarize(valid)
	c := Chart{
		Arrivals:       make([]TimePoint, 0, len(valid)),
		Departures:     make([]TimePoint, 0, len(valid)),
		Breaks:         make([]BreakPoint, 0, len(valid)),
		MeanArrival:    summary.MeanArrival,
		MeanDeparture:  summary.MeanDeparture,
		BreakThreshold: cfg.BreakThresholdMinutes,
	}
	for _, r := range valid {
		d := DateOf(r.DateEntered)
		c.Arrivals = append(c.Arrivals, TimePoint{Date: d, Value: r.StartTime, Mean: *summary.MeanArrival})
		c.Departures = append(c.Departures, TimePoint{Date: d, Value: r.ComputedDeparture, Mean: *summary.MeanDeparture})
		c.Breaks = append(c.Breaks, BreakPoint{
			Date:           d,
			Minutes:        r.BreakMinutes(),
			BelowThreshold: r.BreakMinutes() < cfg.BreakThresholdMinutes,
		})
	}
	return c
}
