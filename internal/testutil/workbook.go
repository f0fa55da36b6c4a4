package testutil

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet maps A1 cell references to fixture values.
type Sheet map[string]any

// DateOnly marks a fixture value to be stored as a date with a short date format.
type DateOnly time.Time

const shortDateFormat = 14

// WriteWorkbook builds an .xlsx file in a temp dir from the given sheets and returns its path.
// Sheets are created in name order.
func WriteWorkbook(t *testing.T, sheets map[string]Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: shortDateFormat})
	if err != nil {
		t.Fatalf("create date style: %v", err)
	}

	for i, name := range names {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("create sheet %s: %v", name, err)
		}
		for ref, value := range sheets[name] {
			if d, ok := value.(DateOnly); ok {
				if err := f.SetCellValue(name, ref, time.Time(d)); err != nil {
					t.Fatalf("set %s!%s: %v", name, ref, err)
				}
				if err := f.SetCellStyle(name, ref, ref, dateStyle); err != nil {
					t.Fatalf("style %s!%s: %v", name, ref, err)
				}
				continue
			}
			if err := f.SetCellValue(name, ref, value); err != nil {
				t.Fatalf("set %s!%s: %v", name, ref, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// Column fills col from startRow downward with values.
func Column(s Sheet, col string, startRow int, values ...any) Sheet {
	for i, v := range values {
		if v == nil {
			continue
		}
		ref, err := excelize.JoinCellName(col, startRow+i)
		if err != nil {
			panic(err)
		}
		s[ref] = v
	}
	return s
}
