package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"taikin/taikin"
)

// ScheduleEditor is the write side of taikin.ScheduleRecorder used by the TUI.
type ScheduleEditor interface {
	Update(id string, p taikin.SchedulePatch) (taikin.Schedule, error)
	Delete(id string) (bool, error)
}

func NewTUI(editor ScheduleEditor, repo ViewRepository, logger *slog.Logger) Viewer {
	return &tui{
		editor: editor,
		repo:   repo,
		logger: logger,
	}
}

type tui struct {
	editor ScheduleEditor
	repo   ViewRepository

	logger *slog.Logger

	app  *tview.Application
	root *tview.Flex
}

func (t *tui) Do(skip, limit int) error {
	rows, err := t.repo.ListRows(skip, limit)
	if err != nil {
		return err
	}

	if t.app != nil {
		t.app.Stop()
	}

	t.app = tview.NewApplication()

	table := newScheduleTable(rows)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(table, 0, 1, true)

	rowOffset := 1
	table.Select(rowOffset, 0).SetFixed(1, 0).SetSelectable(true, false).
		SetSelectedFunc(func(row int, column int) {
			if row < rowOffset || row-rowOffset >= len(rows) {
				return
			}
			r := rows[row-rowOffset]
			reload := func() {
				if err := t.Do(skip, limit); err != nil {
					t.logger.Error("failed to reload schedules", slog.String("err", err.Error()))
				}
			}
			form := t.newScheduleForm(r, reload, func(form *tview.Form) {
				t.app.SetFocus(table)
				flex.RemoveItem(form)
			})
			flex.AddItem(form, 0, 1, true)
			t.app.SetFocus(form)
		})

	t.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewTextView().SetText(fmt.Sprintf("勤務記録 (%d件)  Enter: 編集  Ctrl-C: 終了", len(rows))), 1, 1, false).
		AddItem(flex, 0, 1, true)
	return t.app.SetRoot(t.root, true).Run()
}

func newScheduleTable(rows scheduleRowsForView) *tview.Table {
	table := tview.NewTable().SetBorders(true)

	headers := []string{"日付", "出勤", "休憩", "休憩時間", "退勤予定"}
	for i, h := range headers {
		table.SetCell(0, i, tview.NewTableCell(h).SetAlign(tview.AlignCenter).SetSelectable(false))
	}

	offset := 1
	for i, row := range rows {
		s := row.Schedule
		table.SetCell(i+offset, 0, dateToCell(row.Date))
		table.SetCell(i+offset, 1, newTimeCell(s.StartTime.String()))
		table.SetCell(i+offset, 2, newTimeCell(fmt.Sprintf("%s ~ %s", s.BreakStart, s.BreakEnd)))

		breakCell := newTimeCell(minutesToString(s.BreakMinutes()))
		if row.ShortBreak {
			breakCell.SetTextColor(tcell.ColorRed)
		}
		table.SetCell(i+offset, 3, breakCell)
		table.SetCell(i+offset, 4, newTimeCell(s.ComputedDeparture.String()))
	}
	return table
}

func (t *tui) newScheduleForm(r scheduleRowForView, reload func(), handleCancel func(form *tview.Form)) *tview.Form {
	s := r.Schedule
	startAt := s.StartTime.String()
	breakStartAt := s.BreakStart.String()
	breakEndAt := s.BreakEnd.String()

	form := tview.NewForm().
		AddInputField("出勤時刻(HH:mm)", startAt, 0, nil, func(text string) {
			startAt = text
		}).
		AddInputField("休憩開始時刻(HH:mm)", breakStartAt, 0, nil, func(text string) {
			breakStartAt = text
		}).
		AddInputField("休憩終了時刻(HH:mm)", breakEndAt, 0, nil, func(text string) {
			breakEndAt = text
		}).
		AddTextView("", "", 0, 0, false, false)

	showError := func(form *tview.Form, msg string) {
		form.GetFormItem(3).(*tview.TextView).
			SetLabel("エラー").
			SetText(msg)
	}

	form.
		AddButton("保存", func() {
			patch := buildPatch(s, startAt, breakStartAt, breakEndAt)
			if _, err := t.editor.Update(s.ID, patch); err != nil {
				t.logger.Error("failed to update schedule", slog.String("id", s.ID), slog.String("err", err.Error()))
				showError(form, validationMessage(err))
				return
			}
			reload()
		}).
		AddButton("削除", func() {
			if _, err := t.editor.Delete(s.ID); err != nil {
				t.logger.Error("failed to delete schedule", slog.String("id", s.ID), slog.String("err", err.Error()))
				showError(form, "削除に失敗しました")
				return
			}
			reload()
		}).
		AddButton("キャンセル", func() {
			handleCancel(form)
		})
	form.SetBorder(true).
		SetTitle(fmt.Sprintf("勤務記録の編集 %s", r.Date)).
		SetTitleAlign(tview.AlignLeft)
	return form
}

// buildPatch only carries the fields the user actually changed.
func buildPatch(s taikin.Schedule, startAt, breakStartAt, breakEndAt string) taikin.SchedulePatch {
	var p taikin.SchedulePatch
	if startAt != s.StartTime.String() {
		p.StartTime = &startAt
	}
	if breakStartAt != s.BreakStart.String() {
		p.BreakStart = &breakStartAt
	}
	if breakEndAt != s.BreakEnd.String() {
		p.BreakEnd = &breakEndAt
	}
	return p
}

func validationMessage(err error) string {
	switch taikin.KindOf(err) {
	case taikin.KindValidation:
		return "時刻の形式が不正です"
	case taikin.KindNotFound:
		return "記録が見つかりません"
	}
	return "保存に失敗しました"
}

var week = []string{"日", "月", "火", "水", "木", "金", "土"}

func dateToCell(d taikin.Date) *tview.TableCell {
	t, err := d.Time()
	if err != nil {
		return tview.NewTableCell(string(d)).SetAlign(tview.AlignCenter)
	}
	color := tcell.ColorWhite
	switch t.Weekday() {
	case time.Saturday:
		color = tcell.ColorBlue
	case time.Sunday:
		color = tcell.ColorRed
	}

	s := fmt.Sprintf(" %s (%s) ", t.Format("01/02"), week[t.Weekday()])
	return tview.NewTableCell(s).SetTextColor(color).SetAlign(tview.AlignCenter)
}

func newTimeCell(s string) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("  %s  ", s)).SetAlign(tview.AlignCenter)
}
