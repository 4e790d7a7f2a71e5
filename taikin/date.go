package taikin

import "time"

const dateLayout = "2006-01-02"

// Date is a calendar day formatted as YYYY-MM-DD.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}
