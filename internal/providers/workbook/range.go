package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is a rectangular block of cells with 1-based inclusive bounds.
type Range struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// Rows is the number of rows the range spans.
func (r Range) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols is the number of columns the range spans.
func (r Range) Cols() int { return r.EndCol - r.StartCol + 1 }

// ParseRange parses "AH8:AQ3000" or a single reference such as "BF6".
// Corners may be given in either order.
func ParseRange(ref string) (Range, error) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""), ":")
	if len(parts) > 2 || parts[0] == "" {
		return Range{}, fmt.Errorf("invalid range %q", ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		if c2, r2, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return Range{StartCol: c1, StartRow: r1, EndCol: c2, EndRow: r2}, nil
}
