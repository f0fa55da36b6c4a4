package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bbmi-data-export/internal/app/brackets"
	"bbmi-data-export/internal/app/exports"
	"bbmi-data-export/internal/config"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/providers/workbook"
)

// workbookKind picks which configured workbook a command defaults to.
type workbookKind int

const (
	wiaaWorkbook workbookKind = iota
	ncaaWorkbook
)

func (k workbookKind) envName() string {
	if k == ncaaWorkbook {
		return "NCAA_WORKBOOK"
	}
	return "WIAA_WORKBOOK"
}

// workbookFlags are shared by every command that reads a workbook.
type workbookFlags struct {
	kind     workbookKind
	workbook string
	out      string
}

func (f *workbookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.workbook, "workbook", "", fmt.Sprintf("Path to the .xlsx workbook (default $%s)", f.kind.envName()))
	cmd.Flags().StringVar(&f.out, "out", "", "Output directory (default --data-dir)")
}

func (a *app) workbookPath(f *workbookFlags) (string, error) {
	path := f.workbook
	if path == "" {
		if f.kind == ncaaWorkbook {
			path = a.cfg.NCAAWorkbook
		} else {
			path = a.cfg.WIAAWorkbook
		}
	}
	if path == "" {
		return "", fmt.Errorf("--workbook is required (or set %s)", f.kind.envName())
	}
	return config.ExpandHome(path), nil
}

func (a *app) writer(f *workbookFlags) *output.Writer {
	root := a.cfg.DataDir
	if f.out != "" {
		root = config.ExpandHome(f.out)
	}
	return output.NewWriter(root)
}

// withWorkbook opens the workbook named by f for the duration of fn.
func (a *app) withWorkbook(f *workbookFlags, fn func(wb *workbook.Workbook, w *output.Writer) error) error {
	path, err := a.workbookPath(f)
	if err != nil {
		return err
	}
	wb, err := workbook.Open(path)
	if err != nil {
		return err
	}
	defer wb.Close()
	logging.Debug(a.logger, "workbook opened", slog.String(logging.FieldPath, path), slog.Any("sheets", wb.Sheets()))
	return fn(wb, a.writer(f))
}

func (a *app) runBrackets(ctx context.Context, wb *workbook.Workbook, w *output.Writer) error {
	svc := brackets.NewService(wb, w, a.logger, a.metrics)
	summaries, err := svc.Run(ctx)
	for _, s := range summaries {
		switch {
		case s.Err != nil:
			a.printf("D%d: failed: %v\n", s.Division, s.Err)
		case s.Skipped:
			a.printf("D%d: no bracket data\n", s.Division)
		default:
			a.printf("D%d: %d teams\n", s.Division, s.Teams)
		}
	}
	return err
}

// runExports runs jobs and fails only when none of them succeeded.
func (a *app) runExports(ctx context.Context, wb *workbook.Workbook, w *output.Writer, jobs ...exports.Job) error {
	svc := exports.NewService(wb, w, a.logger, a.metrics)
	summaries, err := svc.RunAll(ctx, jobs...)
	for _, s := range summaries {
		a.printf("%s: %d rows -> %s\n", s.Job, s.RowsWritten, w.Path(s.Output))
	}
	if err == nil {
		return nil
	}
	if len(summaries) == 0 || errors.Is(err, context.Canceled) {
		return err
	}
	logging.Warn(a.logger, "some exports failed", slog.Any("error", err))
	return nil
}

func (a *app) bracketsCmd() *cobra.Command {
	f := &workbookFlags{kind: wiaaWorkbook}
	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "Export WIAA division brackets to JSON and CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withWorkbook(f, func(wb *workbook.Workbook, w *output.Writer) error {
				return a.runBrackets(cmd.Context(), wb, w)
			})
		},
	}
	f.register(cmd)
	return cmd
}

// jobCmd builds a command that runs fixed export jobs against one workbook.
func (a *app) jobCmd(use, short string, kind workbookKind, jobs func() []exports.Job) *cobra.Command {
	f := &workbookFlags{kind: kind}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withWorkbook(f, func(wb *workbook.Workbook, w *output.Writer) error {
				return a.runExports(cmd.Context(), wb, w, jobs()...)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) wiaaRankingsCmd() *cobra.Command {
	return a.jobCmd("wiaa-rankings", "Export WIAA division rankings (sheets d1-d5)", wiaaWorkbook, func() []exports.Job {
		return []exports.Job{exports.WIAARankings()}
	})
}

func (a *app) wiaaTeamCmd() *cobra.Command {
	return a.jobCmd("wiaa-team", "Export the WIAA team schedule sheet", wiaaWorkbook, func() []exports.Job {
		return []exports.Job{exports.WIAATeamSchedule()}
	})
}

func (a *app) ncaaExportsCmd() *cobra.Command {
	return a.jobCmd("ncaa-exports", "Export NCAA games, rankings and seeding ranges", ncaaWorkbook, ncaaRangeJobs)
}

func (a *app) bubblewatchCmd() *cobra.Command {
	return a.jobCmd("bubblewatch", "Export the NCAA bubble watch table as JSON", ncaaWorkbook, func() []exports.Job {
		return []exports.Job{exports.Bubblewatch()}
	})
}

func (a *app) ncaaScoresCmd() *cobra.Command {
	return a.jobCmd("ncaa-scores", "Export completed NCAA game scores", ncaaWorkbook, func() []exports.Job {
		return []exports.Job{exports.NCAAScores()}
	})
}

func ncaaRangeJobs() []exports.Job {
	fixed := exports.NCAAExports()
	jobs := make([]exports.Job, 0, len(fixed))
	for _, j := range fixed {
		jobs = append(jobs, j)
	}
	return jobs
}

func (a *app) rangeCmd() *cobra.Command {
	f := &workbookFlags{kind: ncaaWorkbook}
	var sheetName, ref, outFile, format string
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Export an arbitrary sheet range to CSV or JSON",
		Example: `  bbmi-export range --sheet "Team Probabilities" --range AV6:BD70 --output seeding/seeding.csv
  bbmi-export range --workbook wiaa.xlsx --sheet d1 --range B7:C150 --output d1.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := workbook.ParseRange(ref); err != nil {
				return err
			}
			fmtValue, err := exports.ParseFormat(format, outFile)
			if err != nil {
				return err
			}
			job := exports.RangeJob{
				Name:   "range",
				Sheet:  sheetName,
				Ref:    ref,
				Output: outFile,
				Format: fmtValue,
			}
			return a.withWorkbook(f, func(wb *workbook.Workbook, w *output.Writer) error {
				return a.runExports(cmd.Context(), wb, w, job)
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (required)")
	cmd.Flags().StringVar(&ref, "range", "", "A1 range such as AH8:AQ3000 (required)")
	cmd.Flags().StringVar(&outFile, "output", "", "Output file, relative to --out (required)")
	cmd.Flags().StringVar(&format, "format", "", "csv or json (default: from --output extension)")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("range")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) allCmd() *cobra.Command {
	var wiaaPath, ncaaPath, out string
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run every workbook export for the configured workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wiaa := &workbookFlags{kind: wiaaWorkbook, workbook: wiaaPath, out: out}
			ncaa := &workbookFlags{kind: ncaaWorkbook, workbook: ncaaPath, out: out}
			if wiaaPath == "" && a.cfg.WIAAWorkbook == "" && ncaaPath == "" && a.cfg.NCAAWorkbook == "" {
				return errors.New("no workbook configured: pass --wiaa-workbook/--ncaa-workbook or set WIAA_WORKBOOK/NCAA_WORKBOOK")
			}

			var errs []error
			if _, err := a.workbookPath(wiaa); err == nil {
				errs = append(errs, a.withWorkbook(wiaa, func(wb *workbook.Workbook, w *output.Writer) error {
					return errors.Join(
						a.runBrackets(cmd.Context(), wb, w),
						a.runExports(cmd.Context(), wb, w, exports.WIAARankings(), exports.WIAATeamSchedule()),
					)
				}))
			} else {
				logging.Info(a.logger, "skipping WIAA exports", slog.String(logging.FieldReason, err.Error()))
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if _, err := a.workbookPath(ncaa); err == nil {
				errs = append(errs, a.withWorkbook(ncaa, func(wb *workbook.Workbook, w *output.Writer) error {
					jobs := append(ncaaRangeJobs(), exports.Bubblewatch(), exports.NCAAScores())
					return a.runExports(cmd.Context(), wb, w, jobs...)
				}))
			} else {
				logging.Info(a.logger, "skipping NCAA exports", slog.String(logging.FieldReason, err.Error()))
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&wiaaPath, "wiaa-workbook", "", "WIAA workbook (default $WIAA_WORKBOOK)")
	cmd.Flags().StringVar(&ncaaPath, "ncaa-workbook", "", "NCAA workbook (default $NCAA_WORKBOOK)")
	cmd.Flags().StringVar(&out, "out", "", "Output directory (default --data-dir)")
	return cmd
}
