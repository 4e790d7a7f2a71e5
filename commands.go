package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"taikin/taikin"
	"taikin/view"
)

// withEnv opens the data directory for the duration of one command.
func withEnv(fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := openEnv(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer e.Close()

		if err := fn(c, e); err != nil {
			e.logger.Error("command failed", slog.String("command", c.Command.Name), slog.String("err", err.Error()))
			return cli.Exit(err, exitCode(err))
		}
		return nil
	}
}

func exitCode(err error) int {
	switch taikin.KindOf(err) {
	case taikin.KindValidation:
		return 2
	case taikin.KindNotFound:
		return 3
	case taikin.KindPersistence:
		return 4
	}
	return 1
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "労働時間と休憩の目安を設定",
	Subcommands: []*cli.Command{
		{
			Name:  "show",
			Usage: "現在の設定を表示",
			Action: withEnv(func(c *cli.Context, e *env) error {
				view.RenderConfig(e.out, e.configs.Load())
				return nil
			}),
		},
		{
			Name:  "set",
			Usage: "指定した項目だけ更新",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "hours", Usage: "work hours (0-12)"},
				&cli.IntFlag{Name: "minutes", Usage: "work minutes (0-59)"},
				&cli.IntFlag{Name: "threshold", Usage: "break threshold in minutes (0-120)"},
			},
			Action: withEnv(func(c *cli.Context, e *env) error {
				var p taikin.ConfigPatch
				if c.IsSet("hours") {
					v := c.Int("hours")
					p.WorkHours = &v
				}
				if c.IsSet("minutes") {
					v := c.Int("minutes")
					p.WorkMinutes = &v
				}
				if c.IsSet("threshold") {
					v := c.Int("threshold")
					p.BreakThresholdMinutes = &v
				}
				if p.IsEmpty() {
					return fmt.Errorf("nothing to update: use --hours, --minutes or --threshold")
				}
				cfg, err := e.configs.Update(p)
				if err != nil {
					return err
				}
				view.RenderConfig(e.out, cfg)
				return nil
			}),
		},
		{
			Name:  "reset",
			Usage: "初期値 (7h10, 45分) に戻す",
			Action: withEnv(func(c *cli.Context, e *env) error {
				cfg, err := e.configs.Reset()
				if err != nil {
					return err
				}
				view.RenderConfig(e.out, cfg)
				return nil
			}),
		},
	},
}

var addCommand = &cli.Command{
	Name:      "add",
	Usage:     "今日の勤務を記録して退勤時刻を計算",
	ArgsUsage: "START BREAK_START BREAK_END",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "notify", Usage: "show the departure time as a desktop notification"},
	},
	Action: withEnv(func(c *cli.Context, e *env) error {
		if c.NArg() != 3 {
			return fmt.Errorf("want 3 arguments (HH:MM HH:MM HH:MM), got %d", c.NArg())
		}
		s, err := e.recorder.Create(taikin.ScheduleInput{
			StartTime:  c.Args().Get(0),
			BreakStart: c.Args().Get(1),
			BreakEnd:   c.Args().Get(2),
		})
		if err != nil {
			return err
		}
		view.RenderSchedule(e.out, s)

		if c.Bool("notify") {
			var no Notificator = &MacNotificator{}
			if err := no.Notify("退勤予定", fmt.Sprintf("%s に退勤できます", s.ComputedDeparture)); err != nil {
				e.logger.Warn("failed to notify", slog.String("err", err.Error()))
			}
		}
		return nil
	}),
}

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "勤務記録の一覧を新しい順に表示",
	Flags: paginationFlags(),
	Action: withEnv(func(c *cli.Context, e *env) error {
		v := view.NewTableViewer(view.NewViewRepository(e.recorder, e.configs), e.out)
		return v.Do(c.Int("skip"), c.Int("limit"))
	}),
}

var getCommand = &cli.Command{
	Name:      "get",
	Usage:     "勤務記録を表示",
	ArgsUsage: "ID",
	Action: withEnv(func(c *cli.Context, e *env) error {
		s, err := e.recorder.Get(c.Args().First())
		if err != nil {
			return err
		}
		view.RenderSchedule(e.out, s)
		return nil
	}),
}

var editCommand = &cli.Command{
	Name:      "edit",
	Usage:     "勤務記録を修正 (退勤時刻は現在の設定で再計算)",
	ArgsUsage: "ID",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "start"},
		&cli.StringFlag{Name: "break-start"},
		&cli.StringFlag{Name: "break-end"},
	},
	Action: withEnv(func(c *cli.Context, e *env) error {
		var p taikin.SchedulePatch
		if c.IsSet("start") {
			v := c.String("start")
			p.StartTime = &v
		}
		if c.IsSet("break-start") {
			v := c.String("break-start")
			p.BreakStart = &v
		}
		if c.IsSet("break-end") {
			v := c.String("break-end")
			p.BreakEnd = &v
		}
		s, err := e.recorder.Update(c.Args().First(), p)
		if err != nil {
			return err
		}
		view.RenderSchedule(e.out, s)
		return nil
	}),
}

var deleteCommand = &cli.Command{
	Name:      "delete",
	Usage:     "勤務記録を削除",
	ArgsUsage: "ID",
	Action: withEnv(func(c *cli.Context, e *env) error {
		id := c.Args().First()
		deleted, err := e.recorder.Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return &taikin.Error{Kind: taikin.KindNotFound, Op: "delete schedule", Msg: "schedule " + id}
		}
		fmt.Fprintf(e.out, "deleted %s\n", id)
		return nil
	}),
}

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "平均出勤・退勤・休憩時間を表示",
	Action: withEnv(func(c *cli.Context, e *env) error {
		rs, err := e.recorder.All()
		if err != nil {
			return err
		}
		view.RenderSummary(e.out, taikin.Summarize(rs))
		return nil
	}),
}

var chartCommand = &cli.Command{
	Name:  "chart",
	Usage: "日ごとの出勤・退勤・休憩を表示",
	Action: withEnv(func(c *cli.Context, e *env) error {
		rs, err := e.recorder.All()
		if err != nil {
			return err
		}
		view.RenderChart(e.out, taikin.Project(rs, e.configs.Load()))
		return nil
	}),
}

var viewCommand = &cli.Command{
	Name:  "view",
	Usage: "勤務記録を TUI で表示・編集",
	Flags: paginationFlags(),
	Action: withEnv(func(c *cli.Context, e *env) error {
		v := view.NewTUI(e.recorder, view.NewViewRepository(e.recorder, e.configs), e.logger)
		return v.Do(c.Int("skip"), c.Int("limit"))
	}),
}

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "勤務記録を CSV に書き出す",
	ArgsUsage: "[FILE]",
	Action: withEnv(func(c *cli.Context, e *env) error {
		rs, err := e.recorder.All()
		if err != nil {
			return err
		}
		if c.NArg() == 0 {
			return taikin.ExportCSV(e.out, rs)
		}
		f, err := os.Create(c.Args().First())
		if err != nil {
			return err
		}
		if err := taikin.ExportCSV(f, rs); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}),
}

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "CSV から勤務記録を取り込む (退勤時刻は現在の設定で再計算)",
	ArgsUsage: "FILE",
	Action: withEnv(func(c *cli.Context, e *env) error {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := taikin.ReadCSV(f)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := e.recorder.CreateAt(row.Input, row.DateEntered); err != nil {
				return err
			}
		}
		fmt.Fprintf(e.out, "imported %d schedules\n", len(rows))
		return nil
	}),
}

func paginationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "skip", Value: 0},
		&cli.IntFlag{Name: "limit", Value: 100},
	}
}
