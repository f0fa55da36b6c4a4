// Package brackets runs the per-division bracket export: read the bracket
// sheet, extract team records, write JSON and CSV.
package brackets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"time"

	domain "bbmi-data-export/internal/domain/brackets"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/metrics"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/providers"
)

const (
	// JobName labels logs and metrics for this job.
	JobName = "brackets"
	// DefaultDir is where bracket files land under the data directory.
	DefaultDir = "wiaa-seeding"

	startRow     = 6
	rowLimit     = 1000
	anchorColumn = "C"
)

// ErrAllFailed is returned when no division could be read.
var ErrAllFailed = errors.New("every division failed")

// Writer persists export files.
type Writer interface {
	WriteJSON(rel string, payload any) (output.Result, error)
	WriteCSV(rel string, header []string, rows [][]string) (output.Result, error)
}

// Division binds a division number to its sheet and output base name.
type Division struct {
	Number int
	Sheet  string
	Output string
}

// DefaultDivisions returns divisions 1 through 5 in order.
func DefaultDivisions() []Division {
	divisions := make([]Division, 0, 5)
	for n := 1; n <= 5; n++ {
		divisions = append(divisions, Division{
			Number: n,
			Sheet:  fmt.Sprintf("D%d Bracket", n),
			Output: fmt.Sprintf("wiaa-d%d-bracket", n),
		})
	}
	return divisions
}

// Summary reports what happened to one division.
type Summary struct {
	Division int
	Sheet    string
	RowsRead int
	Teams    int
	Rejected map[domain.Reason]int
	Files    []string
	Skipped  bool
	Err      error
}

// Service exports bracket files for a set of divisions.
type Service struct {
	source    providers.SheetSource
	writer    Writer
	logger    *slog.Logger
	metrics   *metrics.Recorder
	divisions []Division
	dir       string
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithDivisions limits the run to the given divisions.
func WithDivisions(divisions []Division) Option {
	return func(s *Service) {
		if len(divisions) > 0 {
			s.divisions = divisions
		}
	}
}

// WithDir sets the output directory relative to the writer root.
func WithDir(dir string) Option {
	return func(s *Service) { s.dir = dir }
}

// NewService constructs a Service with the default divisions.
func NewService(source providers.SheetSource, writer Writer, logger *slog.Logger, recorder *metrics.Recorder, opts ...Option) *Service {
	s := &Service{
		source:    source,
		writer:    writer,
		logger:    logger,
		metrics:   recorder,
		divisions: DefaultDivisions(),
		dir:       DefaultDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run exports every configured division. A division that cannot be read is
// logged and skipped; Run fails only when the context is canceled or every
// division failed.
func (s *Service) Run(ctx context.Context) ([]Summary, error) {
	summaries := make([]Summary, 0, len(s.divisions))
	failed := 0
	for _, d := range s.divisions {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		sum := s.RunDivision(ctx, d)
		if sum.Err != nil {
			failed++
		}
		summaries = append(summaries, sum)
	}

	for _, sum := range summaries {
		if sum.Err != nil || sum.Skipped {
			continue
		}
		logging.Info(s.logger, "bracket summary",
			slog.String(logging.FieldJob, JobName),
			slog.Int(logging.FieldDivision, sum.Division),
			slog.Int(logging.FieldCount, sum.Teams),
		)
	}

	if len(s.divisions) > 0 && failed == len(s.divisions) {
		return summaries, ErrAllFailed
	}
	return summaries, nil
}

// RunDivision exports a single division. Failures are reported on the Summary.
func (s *Service) RunDivision(ctx context.Context, d Division) Summary {
	start := s.now()
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldJob, JobName),
			slog.Int(logging.FieldDivision, d.Number),
			slog.String(logging.FieldSheet, d.Sheet),
		)
	}

	sum := Summary{Division: d.Number, Sheet: d.Sheet}
	err := s.runDivision(logger, d, &sum)
	sum.Err = err
	if err != nil {
		logging.Error(logger, "division export failed", err)
	}

	s.metrics.RecordExport(JobName, metrics.Export{
		RowsRead:       sum.RowsRead,
		RowsRejected:   sum.RowsRead - sum.Teams,
		RecordsWritten: sum.Teams,
		Duration:       s.now().Sub(start),
		Err:            err,
	})
	return sum
}

func (s *Service) runDivision(logger *slog.Logger, d Division, sum *Summary) error {
	if s.source == nil {
		return providers.ErrSourceUnavailable
	}
	policy, err := domain.PolicyFor(d.Number)
	if err != nil {
		return err
	}

	last, err := s.source.LastRowBeforeGap(d.Sheet, anchorColumn, startRow, rowLimit)
	if err != nil {
		return err
	}
	logging.Debug(logger, "bracket rows located", slog.Int("start_row", startRow), slog.Int("last_row", last))
	if last < startRow {
		sum.Skipped = true
		logging.Warn(logger, "no bracket data found")
		return nil
	}

	block, err := s.source.ReadColumns(d.Sheet, domain.ColumnLetters(), startRow, last)
	if err != nil {
		return err
	}
	res := domain.ExtractDetailed(domain.RowsFromCells(block), policy)
	sum.RowsRead = len(block)
	sum.Teams = len(res.Records)
	sum.Rejected = res.Rejected
	s.logRejections(logger, res.Rejected)

	jsonRel := path.Join(s.dir, d.Output+".json")
	csvRel := path.Join(s.dir, d.Output+".csv")
	if _, err := s.writer.WriteJSON(jsonRel, res.Records); err != nil {
		return fmt.Errorf("write %s: %w", jsonRel, err)
	}
	if _, err := s.writer.WriteCSV(csvRel, domain.CSVHeader, domain.CSVRows(res.Records)); err != nil {
		return fmt.Errorf("write %s: %w", csvRel, err)
	}
	sum.Files = []string{jsonRel, csvRel}

	logging.Info(logger, "division exported",
		slog.Int(logging.FieldCount, sum.Teams),
		slog.Int("max_seed", policy.MaxSeed()),
		slog.Int("rows_read", sum.RowsRead),
	)
	return nil
}

func (s *Service) logRejections(logger *slog.Logger, rejected map[domain.Reason]int) {
	reasons := make([]string, 0, len(rejected))
	for r := range rejected {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		n := rejected[domain.Reason(r)]
		s.metrics.RecordRejected(JobName, r, n)
		logging.Debug(logger, "rows rejected", slog.String(logging.FieldReason, r), slog.Int(logging.FieldCount, n))
	}
}
