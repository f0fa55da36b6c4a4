package exports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bbmi-data-export/internal/metrics"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/providers"
	"bbmi-data-export/internal/providers/workbook"
	"bbmi-data-export/internal/teststubs"
	"bbmi-data-export/internal/testutil"
)

func day(y int, m time.Month, d int) testutil.DateOnly {
	return testutil.DateOnly(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func openFixture(t *testing.T, sheets map[string]testutil.Sheet) *workbook.Workbook {
	t.Helper()
	wb, err := workbook.Open(testutil.WriteWorkbook(t, sheets))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestRunRecordsMetricsAndLogs(t *testing.T) {
	wb := openFixture(t, map[string]testutil.Sheet{
		"Data": {"A1": "x", "B1": 2, "A2": "y"},
	})
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(wb, output.NewWriter(t.TempDir()), logger, rec)

	sum, err := svc.Run(context.Background(), RangeJob{Name: "data", Sheet: "Data", Ref: "A1:B2", Output: "data.csv"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Job != "data" || sum.RowsRead != 2 || sum.RowsWritten != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	snap := rec.JobSnapshot("data")
	if snap.Runs != 1 || snap.Errors != 0 || snap.RecordsWritten != 2 {
		t.Fatalf("unexpected metrics %+v", snap)
	}
	if !strings.Contains(buf.String(), "export written") || !strings.Contains(buf.String(), "job=data") {
		t.Fatalf("expected export log, got %s", buf.String())
	}
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	wb := openFixture(t, map[string]testutil.Sheet{
		"Data": {"A1": "x"},
	})
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(wb, output.NewWriter(t.TempDir()), logger, rec)

	summaries, err := svc.RunAll(context.Background(),
		RangeJob{Name: "missing", Sheet: "Nope", Ref: "A1", Output: "missing.csv"},
		RangeJob{Name: "data", Sheet: "Data", Ref: "A1", Output: "data.csv"},
	)
	if !errors.Is(err, providers.ErrSourceUnavailable) {
		t.Fatalf("expected missing sheet error, got %v", err)
	}
	if len(summaries) != 1 || summaries[0].Job != "data" {
		t.Fatalf("expected the second job to run, got %+v", summaries)
	}
	if rec.JobSnapshot("missing").Errors != 1 {
		t.Fatalf("expected failed job to be recorded")
	}
	if !strings.Contains(buf.String(), "export failed") {
		t.Fatalf("expected failure log, got %s", buf.String())
	}
}

func TestRunWithoutSource(t *testing.T) {
	svc := NewService(nil, output.NewWriter(t.TempDir()), nil, nil)
	if _, err := svc.Run(context.Background(), Bubblewatch()); !errors.Is(err, providers.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestRunAllStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(teststubs.FailingSource{}, output.NewWriter(t.TempDir()), nil, nil)

	summaries, err := svc.RunAll(ctx, Bubblewatch(), NCAAScores())
	if !errors.Is(err, context.Canceled) || len(summaries) != 0 {
		t.Fatalf("expected cancel, got %v with %d summaries", err, len(summaries))
	}
}

func TestRunReportsSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(teststubs.FailingSource{Err: boom}, output.NewWriter(t.TempDir()), nil, nil)

	for _, job := range []Job{Bubblewatch(), NCAAScores(), WIAATeamSchedule()} {
		if _, err := svc.Run(context.Background(), job); !errors.Is(err, boom) {
			t.Fatalf("%s: expected source error, got %v", job.JobName(), err)
		}
	}
}

func TestRunReportsWriteErrors(t *testing.T) {
	wb := openFixture(t, map[string]testutil.Sheet{
		"Scores": {"S6": 45667, "J6": "Duke"},
	})
	diskFull := errors.New("disk full")
	rec := metrics.NewRecorder()
	svc := NewService(wb, &teststubs.StubWriter{Err: diskFull}, nil, rec)

	sum, err := svc.Run(context.Background(), NCAAScores())
	if !errors.Is(err, diskFull) {
		t.Fatalf("expected write error, got %v", err)
	}
	if sum.RowsRead != 1 || sum.RowsWritten != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if snap := rec.JobSnapshot("ncaa-scores"); snap.Errors != 1 {
		t.Fatalf("expected recorded error, got %+v", snap)
	}
}

func TestStubWriterCapturesTableRows(t *testing.T) {
	wb := openFixture(t, map[string]testutil.Sheet{
		"team-schedule": {"A2": 1, "B2": "Arrowhead"},
	})
	w := &teststubs.StubWriter{}
	svc := NewService(wb, w, nil, nil)

	if _, err := svc.Run(context.Background(), WIAATeamSchedule()); err != nil {
		t.Fatalf("run: %v", err)
	}
	rows := w.CSV["wiaa-team/WIAA-team.csv"]
	if len(rows) != 2 || rows[1][0] != "Arrowhead" || rows[1][1] != "1" {
		t.Fatalf("unexpected captured rows %v", rows)
	}
}
