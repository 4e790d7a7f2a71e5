package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"taikin/taikin"
)

type tableViewer struct {
	repo ViewRepository
	out  io.Writer
}

func NewTableViewer(repo ViewRepository, out io.Writer) Viewer {
	return &tableViewer{repo: repo, out: out}
}

func (t *tableViewer) Do(skip, limit int) error {
	rows, err := t.repo.ListRows(skip, limit)
	if err != nil {
		return err
	}
	buildScheduleTable(t.out, rows).Render()
	return nil
}

var shortBreakColor = text.Colors{text.FgRed}

func buildScheduleTable(out io.Writer, rows scheduleRowsForView) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "日付", "出勤", "休憩開始", "休憩終了", "休憩時間", "退勤予定"})

	for _, row := range rows {
		s := row.Schedule
		breakStr := minutesToString(s.BreakMinutes())
		if row.ShortBreak {
			breakStr = shortBreakColor.Sprint(breakStr)
		}
		t.AppendRow(table.Row{
			s.ID,
			string(row.Date),
			s.StartTime.String(),
			s.BreakStart.String(),
			s.BreakEnd.String(),
			breakStr,
			s.ComputedDeparture.String(),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "件数", len(rows)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true},
	})
	return t
}

func RenderSchedule(out io.Writer, s taikin.Schedule) {
	t := newTable(out)
	t.AppendRows([]table.Row{
		{"ID", s.ID},
		{"日付", s.DateEntered.Format("2006-01-02 15:04")},
		{"出勤", s.StartTime.String()},
		{"休憩", fmt.Sprintf("%s ~ %s (%s)", s.BreakStart, s.BreakEnd, minutesToString(s.BreakMinutes()))},
		{"退勤予定", s.ComputedDeparture.String()},
		{"労働時間", s.Policy.String()},
		{"更新", s.UpdatedAt.Format("2006-01-02 15:04")},
	})
	t.Render()
}

func RenderSummary(out io.Writer, s taikin.Summary) {
	t := newTable(out)
	breakStr := emptyTimeStr
	if s.MeanBreakMinutes != nil {
		breakStr = minutesToString(*s.MeanBreakMinutes)
	}
	t.AppendHeader(table.Row{"件数", "平均出勤", "平均退勤", "平均休憩"})
	t.AppendRow(table.Row{s.Count, taikin.ClockString(s.MeanArrival), taikin.ClockString(s.MeanDeparture), breakStr})
	t.Render()
}

func RenderConfig(out io.Writer, cfg taikin.Configuration) {
	t := newTable(out)
	t.AppendRows([]table.Row{
		{"労働時間", cfg.WorkDuration().String()},
		{"休憩の目安", fmt.Sprintf("%d分", cfg.BreakThresholdMinutes)},
		{"更新", cfg.UpdatedAt.Format("2006-01-02 15:04:05")},
	})
	t.Render()
}

const barUnitMinutes = 5

// RenderChart draws the projection as a table with text bars for breaks.
func RenderChart(out io.Writer, c taikin.Chart) {
	t := newTable(out)
	t.AppendHeader(table.Row{"日付", "出勤", "平均出勤", "退勤予定", "平均退勤", "休憩", ""})
	for i, d := range c.Dates() {
		b := c.Breaks[i]
		bar := strings.Repeat("█", b.Minutes/barUnitMinutes)
		if b.BelowThreshold {
			bar = shortBreakColor.Sprint(bar)
		}
		t.AppendRow(table.Row{
			string(d),
			c.Arrivals[i].Value.String(),
			c.Arrivals[i].Mean.String(),
			c.Departures[i].Value.String(),
			c.Departures[i].Mean.String(),
			minutesToString(b.Minutes),
			bar,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "休憩の目安", fmt.Sprintf("%d分", c.BreakThreshold)})
	t.Render()
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

const emptyTimeStr = "--:--"

// minutesToString formats a duration in minutes. Negative durations come
// from broken records and render as emptyTimeStr.
func minutesToString(m int) string {
	if m < 0 {
		return emptyTimeStr
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
