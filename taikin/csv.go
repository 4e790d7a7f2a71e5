package taikin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"
)

const csvDateTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"date_entered", "start_time", "break_start", "break_end", "computed_departure"}

// ExportCSV writes schedules oldest first, one row per schedule.
func ExportCSV(w io.Writer, rs []Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rs {
		row := []string{
			r.DateEntered.Format(csvDateTimeLayout),
			r.StartTime.String(),
			r.BreakStart.String(),
			r.BreakEnd.String(),
			r.ComputedDeparture.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVRow is one imported schedule. The exported departure column is ignored
// on import; it is recomputed with the current configuration.
type CSVRow struct {
	DateEntered time.Time
	Input       ScheduleInput
}

// ReadCSV parses an export produced by ExportCSV. The header row is required.
// Every row is checked before any is returned, so a rejected file imports
// nothing.
func ReadCSV(r io.Reader) ([]CSVRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, validationError("read csv", err.Error())
	}
	if len(header) < 4 || header[0] != csvHeader[0] {
		return nil, validationError("read csv", fmt.Sprintf("unexpected header %v", header))
	}

	var rows []CSVRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, validationError("read csv", err.Error())
		}
		if len(rec) < 4 {
			return nil, validationError("read csv", fmt.Sprintf("line %d: want at least 4 fields, got %d", line, len(rec)))
		}
		t, err := time.ParseInLocation(csvDateTimeLayout, rec[0], time.Local)
		if err != nil {
			return nil, validationError("read csv", fmt.Sprintf("line %d: invalid date_entered %q", line, rec[0]))
		}
		in := ScheduleInput{StartTime: rec[1], BreakStart: rec[2], BreakEnd: rec[3]}
		_, bs, be, err := in.parse()
		if err != nil {
			return nil, validationError("read csv", fmt.Sprintf("line %d: %v", line, err))
		}
		if _, err := BreakMinutes(bs, be); err != nil {
			return nil, validationError("read csv", fmt.Sprintf("line %d: negative break duration", line))
		}
		rows = append(rows, CSVRow{DateEntered: t, Input: in})
	}
	return rows, nil
}
