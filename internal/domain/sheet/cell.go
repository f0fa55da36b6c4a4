// Package sheet models untyped spreadsheet cell values and the lenient
// conversions the export jobs apply to them.
package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags what a Cell holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a single spreadsheet value: absent, text, numeric, or a numeric date.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
}

// Absent returns an empty cell.
func Absent() Cell {
	return Cell{}
}

// Text returns a text cell. An empty string is treated as absent.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// Date returns a date cell; serial is the underlying spreadsheet number.
func Date(t time.Time, serial float64) Cell {
	return Cell{Kind: KindDate, Number: serial, Time: t}
}

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool {
	return c.Kind == KindAbsent
}

// IsBlank reports whether the cell is absent or whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case KindAbsent:
		return true
	case KindText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String renders the cell as text. Numbers use their shortest form, so 2.0 becomes "2".
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return FormatNumber(c.Number)
	case KindDate:
		return FormatTime(c.Time)
	default:
		return ""
	}
}

// Float parses the cell as a finite real number.
func (c Cell) Float() (float64, bool) {
	var v float64
	switch c.Kind {
	case KindNumber, KindDate:
		v = c.Number
	case KindText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int parses the cell as an integer. Numeric cells truncate toward zero;
// text must be an integer literal ("8", not "8.0").
func (c Cell) Int() (int, bool) {
	switch c.Kind {
	case KindNumber, KindDate:
		v, ok := c.Float()
		if !ok || v >= math.MaxInt64 || v <= math.MinInt64 {
			return 0, false
		}
		return int(v), true
	case KindText:
		v, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Value returns the cell as a JSON-friendly value: nil, string, or float64.
func (c Cell) Value() any {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return nil
		}
		return c.Number
	case KindDate:
		return FormatTime(c.Time)
	default:
		return nil
	}
}

// ParseOr applies parse to c and returns def when parsing fails.
func ParseOr[T any](c Cell, parse func(Cell) (T, bool), def T) T {
	if v, ok := parse(c); ok {
		return v
	}
	return def
}

// FloatOr parses c as a float, falling back to def.
func FloatOr(c Cell, def float64) float64 {
	return ParseOr(c, Cell.Float, def)
}

// IntOr parses c as an integer, falling back to def.
func IntOr(c Cell, def int) int {
	return ParseOr(c, Cell.Int, def)
}
