package exports

import (
	"context"
	"fmt"
	"log/slog"

	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/timeutil"
)

// ScoresJob exports completed games from the Scores sheet. The last row is
// the last non-empty cell of the date column; rows without a date are skipped.
type ScoresJob struct {
	Name       string
	Sheet      string
	StartRow   int
	DateColumn string
	Columns    []Column
	Output     string
}

func (j ScoresJob) JobName() string { return j.Name }

// NCAAScores is the NCAA game results feed.
func NCAAScores() ScoresJob {
	return ScoresJob{
		Name:       "ncaa-scores",
		Sheet:      "Scores",
		StartRow:   6,
		DateColumn: "S",
		Columns: []Column{
			{Header: "GameDate", Letter: "S"},
			{Header: "HomeTeam", Letter: "J"},
			{Header: "AwayTeam", Letter: "L"},
			{Header: "HomeScore", Letter: "F"},
			{Header: "AwayScore", Letter: "G"},
		},
		Output: "ncaa-team/ncaa-scores.csv",
	}
}

func (j ScoresJob) run(ctx context.Context, s *Service, logger *slog.Logger) (Summary, error) {
	sum := Summary{Output: j.Output}
	last, err := s.source.LastUsedRow(j.Sheet, j.DateColumn)
	if err != nil {
		return sum, fmt.Errorf("locate last row: %w", err)
	}
	header := make([]string, len(j.Columns))
	letters := make([]string, len(j.Columns))
	for i, c := range j.Columns {
		header[i] = c.Header
		letters[i] = c.Letter
	}

	rows := [][]string{}
	if last >= j.StartRow {
		block, err := s.source.ReadColumns(j.Sheet, letters, j.StartRow, last)
		if err != nil {
			return sum, fmt.Errorf("read %s: %w", j.Sheet, err)
		}
		sum.RowsRead = len(block)
		for _, cells := range block {
			date, ok := gameDate(cells[0])
			if !ok {
				continue
			}
			row := stringify(cells)
			row[0] = date
			rows = append(rows, row)
		}
	}

	if _, err := s.writer.WriteCSV(j.Output, header, rows); err != nil {
		return sum, fmt.Errorf("write %s: %w", j.Output, err)
	}
	sum.RowsWritten = len(rows)
	return sum, nil
}

// gameDate renders a date cell as YYYY-MM-DD. Blank and zero cells are not games.
// Text that does not look like a date is passed through.
func gameDate(c sheet.Cell) (string, bool) {
	switch c.Kind {
	case sheet.KindAbsent:
		return "", false
	case sheet.KindDate:
		return timeutil.FormatDate(c.Time), true
	case sheet.KindNumber:
		if c.Number == 0 {
			return "", false
		}
		return c.String(), true
	default:
		if c.IsBlank() {
			return "", false
		}
		if t, ok := timeutil.ParseLooseDate(c.Text); ok {
			return timeutil.FormatDate(t), true
		}
		return c.Text, true
	}
}
