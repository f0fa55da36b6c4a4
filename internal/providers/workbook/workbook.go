// Package workbook reads typed cells out of .xlsx/.xlsm workbooks.
package workbook

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/providers"
)

// Workbook is an open spreadsheet file. It satisfies providers.SheetSource.
type Workbook struct {
	file     *excelize.File
	name     string
	date1904 bool

	mu     sync.Mutex
	rows   map[string][][]string
	styles map[int]bool
}

var _ providers.SheetSource = (*Workbook)(nil)

// Open opens the workbook at path. Failures wrap providers.ErrSourceUnavailable.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", providers.ErrSourceUnavailable, path, err)
	}
	return newWorkbook(f, path), nil
}

// OpenReader opens a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read workbook: %v", providers.ErrSourceUnavailable, err)
	}
	return newWorkbook(f, "reader"), nil
}

func newWorkbook(f *excelize.File, name string) *Workbook {
	wb := &Workbook{
		file:   f,
		name:   name,
		rows:   make(map[string][][]string),
		styles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// Name is the path the workbook was opened from.
func (w *Workbook) Name() string {
	return w.name
}

// Sheets lists the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// resolveSheet matches name case-insensitively, the way spreadsheet apps do.
func (w *Workbook) resolveSheet(name string) (string, error) {
	for _, candidate := range w.file.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(name)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: sheet %q not found in %s", providers.ErrSourceUnavailable, name, w.name)
}

// rawRows loads the sheet's unformatted values once.
func (w *Workbook) rawRows(sheetName string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rows, ok := w.rows[sheetName]; ok {
		return rows, nil
	}
	rows, err := w.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	w.rows[sheetName] = rows
	return rows, nil
}

// ReadColumns returns one row per sheet row in [startRow, endRow], each with
// one cell per column letter in cols. Rows beyond the sheet's data are absent cells.
func (w *Workbook) ReadColumns(sheetName string, cols []string, startRow, endRow int) ([][]sheet.Cell, error) {
	name, err := w.resolveSheet(sheetName)
	if err != nil {
		return nil, err
	}
	if startRow < 1 {
		return nil, fmt.Errorf("invalid start row %d", startRow)
	}
	colNums := make([]int, len(cols))
	for i, col := range cols {
		n, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: %w", col, err)
		}
		colNums[i] = n
	}
	return w.readBlock(name, startRow, endRow, colNums)
}

// ReadRange reads an A1 range such as "AH8:AQ3000". A single cell reference is a 1x1 range.
func (w *Workbook) ReadRange(sheetName, ref string) ([][]sheet.Cell, error) {
	name, err := w.resolveSheet(sheetName)
	if err != nil {
		return nil, err
	}
	r, err := ParseRange(ref)
	if err != nil {
		return nil, err
	}
	colNums := make([]int, 0, r.EndCol-r.StartCol+1)
	for c := r.StartCol; c <= r.EndCol; c++ {
		colNums = append(colNums, c)
	}
	return w.readBlock(name, r.StartRow, r.EndRow, colNums)
}

func (w *Workbook) readBlock(name string, startRow, endRow int, colNums []int) ([][]sheet.Cell, error) {
	if endRow < startRow {
		return [][]sheet.Cell{}, nil
	}
	raw, err := w.rawRows(name)
	if err != nil {
		return nil, err
	}
	out := make([][]sheet.Cell, 0, endRow-startRow+1)
	for row := startRow; row <= endRow; row++ {
		cells := make([]sheet.Cell, len(colNums))
		for i, col := range colNums {
			cells[i] = w.cellAt(name, raw, col, row)
		}
		out = append(out, cells)
	}
	return out, nil
}

// LastRowBeforeGap scans col downward from startRow and returns the row
// before the first empty cell, capped at limit.
func (w *Workbook) LastRowBeforeGap(sheetName, col string, startRow, limit int) (int, error) {
	name, err := w.resolveSheet(sheetName)
	if err != nil {
		return 0, err
	}
	colNum, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", col, err)
	}
	raw, err := w.rawRows(name)
	if err != nil {
		return 0, err
	}
	for row := startRow; row <= limit; row++ {
		if rawValue(raw, colNum, row) == "" {
			return row - 1, nil
		}
	}
	return limit, nil
}

// LastUsedRow returns the last row with a value in col, or 0 when the column is empty.
func (w *Workbook) LastUsedRow(sheetName, col string) (int, error) {
	name, err := w.resolveSheet(sheetName)
	if err != nil {
		return 0, err
	}
	colNum, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", col, err)
	}
	raw, err := w.rawRows(name)
	if err != nil {
		return 0, err
	}
	for row := len(raw); row >= 1; row-- {
		if rawValue(raw, colNum, row) != "" {
			return row, nil
		}
	}
	return 0, nil
}

func rawValue(raw [][]string, col, row int) string {
	if row < 1 || row > len(raw) {
		return ""
	}
	cols := raw[row-1]
	if col < 1 || col > len(cols) {
		return ""
	}
	return cols[col-1]
}
