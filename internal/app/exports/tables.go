package exports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/providers"
)

// Column binds an output header to a sheet column letter.
type Column struct {
	Header string
	Letter string
}

// TableJob reads the same columns from a fixed row span on one or more
// sheets and writes them as a single CSV with a header row.
type TableJob struct {
	Name     string
	Sheets   []string
	StartRow int
	EndRow   int
	Columns  []Column
	Output   string
	// Keep decides whether a row is written; nil keeps every row.
	Keep func(row []sheet.Cell) bool
	// SkipMissingSheets logs and skips sheets that do not exist instead of failing.
	SkipMissingSheets bool
}

func (j TableJob) JobName() string { return j.Name }

func (j TableJob) header() []string {
	header := make([]string, len(j.Columns))
	for i, c := range j.Columns {
		header[i] = c.Header
	}
	return header
}

func (j TableJob) letters() []string {
	letters := make([]string, len(j.Columns))
	for i, c := range j.Columns {
		letters[i] = c.Letter
	}
	return letters
}

func (j TableJob) run(ctx context.Context, s *Service, logger *slog.Logger) (Summary, error) {
	sum := Summary{Output: j.Output}
	var rows [][]string
	for _, name := range j.Sheets {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		block, err := s.source.ReadColumns(name, j.letters(), j.StartRow, j.EndRow)
		if err != nil {
			if j.SkipMissingSheets && errors.Is(err, providers.ErrSourceUnavailable) {
				logging.Warn(logger, "sheet skipped", slog.String(logging.FieldSheet, name), slog.Any("error", err))
				sum.SkippedSheets = append(sum.SkippedSheets, name)
				continue
			}
			return sum, fmt.Errorf("read %s: %w", name, err)
		}
		kept := 0
		for _, cells := range block {
			sum.RowsRead++
			if j.Keep != nil && !j.Keep(cells) {
				continue
			}
			rows = append(rows, stringify(cells))
			kept++
		}
		logging.Debug(logger, "sheet read", slog.String(logging.FieldSheet, name), slog.Int(logging.FieldCount, kept))
	}
	if len(j.Sheets) > 0 && len(sum.SkippedSheets) == len(j.Sheets) {
		return sum, fmt.Errorf("%w: none of %v found", providers.ErrSourceUnavailable, j.Sheets)
	}

	if _, err := s.writer.WriteCSV(j.Output, j.header(), rows); err != nil {
		return sum, fmt.Errorf("write %s: %w", j.Output, err)
	}
	sum.RowsWritten = len(rows)
	return sum, nil
}

// anyPresent keeps rows where at least one of the first n cells has a value.
func anyPresent(n int) func([]sheet.Cell) bool {
	return func(row []sheet.Cell) bool {
		for i := 0; i < n && i < len(row); i++ {
			if !row[i].IsAbsent() {
				return true
			}
		}
		return false
	}
}

// presentAt keeps rows whose cell at index i has a value.
func presentAt(i int) func([]sheet.Cell) bool {
	return func(row []sheet.Cell) bool {
		return i < len(row) && !row[i].IsAbsent()
	}
}

// WIAARankings exports the division ranking tables from sheets d1 through d5.
func WIAARankings() TableJob {
	return TableJob{
		Name:     "wiaa-rankings",
		Sheets:   []string{"d1", "d2", "d3", "d4", "d5"},
		StartRow: 7,
		EndRow:   150,
		Columns: []Column{
			{Header: "division", Letter: "B"},
			{Header: "team", Letter: "C"},
			{Header: "ranking", Letter: "AL"},
			{Header: "record", Letter: "AM"},
			{Header: "conf_record", Letter: "BB"},
		},
		Output:            "wiaa-rankings/WIAArankings.csv",
		Keep:              anyPresent(4),
		SkipMissingSheets: true,
	}
}

// WIAATeamSchedule exports every game row of the team-schedule sheet.
// Column A (the team's division) anchors a row.
func WIAATeamSchedule() TableJob {
	return TableJob{
		Name:     "wiaa-team",
		Sheets:   []string{"team-schedule"},
		StartRow: 2,
		EndRow:   20000,
		Columns: []Column{
			{Header: "team", Letter: "B"},
			{Header: "team-div", Letter: "A"},
			{Header: "date", Letter: "C"},
			{Header: "opp", Letter: "D"},
			{Header: "opp-div", Letter: "M"},
			{Header: "location", Letter: "F"},
			{Header: "result", Letter: "G"},
			{Header: "team-score", Letter: "H"},
			{Header: "opp-score", Letter: "I"},
			{Header: "teamline", Letter: "V"},
			{Header: "teamwin%", Letter: "AA"},
		},
		Output: "wiaa-team/WIAA-team.csv",
		Keep:   presentAt(1),
	}
}
