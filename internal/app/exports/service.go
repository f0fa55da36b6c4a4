// Package exports runs the fixed-layout workbook exports: column tables,
// rectangular ranges and the scores feed.
package exports

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/metrics"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/providers"
)

// Writer persists export files.
type Writer interface {
	WriteJSON(rel string, payload any) (output.Result, error)
	WriteCSV(rel string, header []string, rows [][]string) (output.Result, error)
}

// Summary reports one finished export.
type Summary struct {
	Job           string
	Output        string
	RowsRead      int
	RowsWritten   int
	SkippedSheets []string
}

// Service runs exports against one workbook.
type Service struct {
	source  providers.SheetSource
	writer  Writer
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(source providers.SheetSource, writer Writer, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		source:  source,
		writer:  writer,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Job is any export the service can run.
type Job interface {
	JobName() string
	run(ctx context.Context, s *Service, logger *slog.Logger) (Summary, error)
}

// Run executes job, logging and recording its outcome.
func (s *Service) Run(ctx context.Context, job Job) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	start := s.now()
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldJob, job.JobName()))
	}

	var (
		sum Summary
		err error
	)
	if s.source == nil {
		err = providers.ErrSourceUnavailable
	} else {
		sum, err = job.run(ctx, s, logger)
	}
	sum.Job = job.JobName()
	elapsed := s.now().Sub(start)

	s.metrics.RecordExport(sum.Job, metrics.Export{
		RowsRead:       sum.RowsRead,
		RowsRejected:   sum.RowsRead - sum.RowsWritten,
		RecordsWritten: sum.RowsWritten,
		Duration:       elapsed,
		Err:            err,
	})
	if err != nil {
		logging.Error(logger, "export failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		return sum, err
	}
	logging.Info(logger, "export written",
		slog.String(logging.FieldPath, sum.Output),
		slog.Int(logging.FieldCount, sum.RowsWritten),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return sum, nil
}

// RunAll runs jobs in order, continuing past failures. It returns the joined
// errors of the failed jobs, or the context error when canceled.
func (s *Service) RunAll(ctx context.Context, jobs ...Job) ([]Summary, error) {
	summaries := make([]Summary, 0, len(jobs))
	var errs []error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		sum, err := s.Run(ctx, job)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		summaries = append(summaries, sum)
	}
	return summaries, errors.Join(errs...)
}

// stringify renders cells for CSV output; absent cells become "".
func stringify(cells []sheet.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}

// values renders cells for JSON output: strings, numbers or null.
func values(cells []sheet.Cell) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c.Value()
	}
	return out
}
