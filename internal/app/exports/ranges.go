package exports

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// Format selects how a range is written.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json", defaulting to the output file's extension.
func ParseFormat(raw, output string) (Format, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		v = strings.TrimPrefix(strings.ToLower(path.Ext(output)), ".")
	}
	switch Format(v) {
	case FormatCSV, FormatJSON:
		return Format(v), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want csv or json)", raw)
	}
}

// RangeJob copies a rectangular block of cells into a file. CSV output has
// no header and renders absent cells as ""; JSON output is an array of row
// arrays holding strings, numbers and nulls.
type RangeJob struct {
	Name   string
	Sheet  string
	Ref    string
	Output string
	Format Format
}

func (j RangeJob) JobName() string { return j.Name }

func (j RangeJob) run(ctx context.Context, s *Service, logger *slog.Logger) (Summary, error) {
	sum := Summary{Output: j.Output}
	block, err := s.source.ReadRange(j.Sheet, j.Ref)
	if err != nil {
		return sum, fmt.Errorf("read %s!%s: %w", j.Sheet, j.Ref, err)
	}
	sum.RowsRead = len(block)

	switch j.Format {
	case FormatJSON:
		rows := make([][]any, len(block))
		for i, cells := range block {
			rows[i] = values(cells)
		}
		_, err = s.writer.WriteJSON(j.Output, rows)
	case FormatCSV, "":
		rows := make([][]string, len(block))
		for i, cells := range block {
			rows[i] = stringify(cells)
		}
		_, err = s.writer.WriteCSV(j.Output, nil, rows)
	default:
		return sum, fmt.Errorf("unsupported format %q", j.Format)
	}
	if err != nil {
		return sum, fmt.Errorf("write %s: %w", j.Output, err)
	}
	sum.RowsWritten = len(block)
	return sum, nil
}

// NCAAExports are the fixed-range CSV feeds of the NCAA model workbook.
func NCAAExports() []RangeJob {
	return []RangeJob{
		{Name: "ncaa-games", Sheet: "Betting Lines", Ref: "AH8:AQ3000", Output: "betting-lines/games.csv", Format: FormatCSV},
		{Name: "ncaa-rankings", Sheet: "My Rankings", Ref: "BZ6:CF371", Output: "rankings/rankings.csv", Format: FormatCSV},
		{Name: "ncaa-seeding", Sheet: "Team Probabilities", Ref: "AV6:BD70", Output: "seeding/seeding.csv", Format: FormatCSV},
	}
}

// Bubblewatch is the bubble-team probability table.
func Bubblewatch() RangeJob {
	return RangeJob{
		Name:   "bubblewatch",
		Sheet:  "team probabilities",
		Ref:    "BF6:BG14",
		Output: "ncaa-bracket/bubblewatch.json",
		Format: FormatJSON,
	}
}
