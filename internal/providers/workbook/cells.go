package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bbmi-data-export/internal/domain/sheet"
)

// cellAt types the raw value at (col, row). Shared, inline and formula
// strings stay text; numbers become dates when their number format is a date format.
func (w *Workbook) cellAt(sheetName string, raw [][]string, col, row int) sheet.Cell {
	value := rawValue(raw, col, row)
	if value == "" {
		return sheet.Absent()
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheet.Text(value)
	}
	typ, err := w.file.GetCellType(sheetName, ref)
	if err != nil {
		return sheet.Text(value)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return sheet.Text(value)
	case excelize.CellTypeBool:
		if value == "1" {
			return sheet.Text("TRUE")
		}
		return sheet.Text("FALSE")
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return sheet.Date(t, 0)
		}
		return sheet.Text(value)
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return sheet.Text(value)
	}
	if w.isDateCell(sheetName, ref) {
		if t, err := excelize.ExcelDateToTime(num, w.date1904); err == nil {
			return sheet.Date(t, num)
		}
	}
	return sheet.Number(num)
}

func (w *Workbook) isDateCell(sheetName, ref string) bool {
	idx, err := w.file.GetCellStyle(sheetName, ref)
	if err != nil || idx == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if isDate, ok := w.styles[idx]; ok {
		return isDate
	}
	isDate := false
	if style, err := w.file.GetStyle(idx); err == nil && style != nil {
		isDate = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	w.styles[idx] = isDate
	return isDate
}
