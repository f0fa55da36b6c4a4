package brackets

import "bbmi-data-export/internal/domain/sheet"

// Field names a position in a bracket row.
type Field int

const (
	FieldTeam Field = iota
	FieldRegion
	FieldWIAASeed
	FieldBBMISeed
	FieldRegionalSemis
	FieldRegionalChampion
	FieldSectionalSemiFinalist
	FieldSectionalFinalist
	FieldStateQualifier
	FieldStateFinalist
	FieldStateChampion
	FieldBracketSeed

	fieldCount
)

// Column binds a sheet column letter to the field it holds.
type Column struct {
	Letter string
	Field  Field
}

// Columns is the bracket sheet layout, B through M.
var Columns = []Column{
	{Letter: "B", Field: FieldTeam},
	{Letter: "C", Field: FieldRegion},
	{Letter: "D", Field: FieldWIAASeed},
	{Letter: "E", Field: FieldBBMISeed},
	{Letter: "F", Field: FieldRegionalSemis},
	{Letter: "G", Field: FieldRegionalChampion},
	{Letter: "H", Field: FieldSectionalSemiFinalist},
	{Letter: "I", Field: FieldSectionalFinalist},
	{Letter: "J", Field: FieldStateQualifier},
	{Letter: "K", Field: FieldStateFinalist},
	{Letter: "L", Field: FieldStateChampion},
	{Letter: "M", Field: FieldBracketSeed},
}

// ColumnLetters returns the column letters in layout order.
func ColumnLetters() []string {
	letters := make([]string, len(Columns))
	for i, col := range Columns {
		letters[i] = col.Letter
	}
	return letters
}

// RawRow holds one bracket row's cells indexed by Field.
type RawRow [fieldCount]sheet.Cell

// Get returns the cell for f.
func (r RawRow) Get(f Field) sheet.Cell {
	if f < 0 || f >= fieldCount {
		return sheet.Absent()
	}
	return r[f]
}

// RowFromCells maps cells read in Columns order onto a RawRow. Missing
// trailing cells stay absent; extra cells are ignored.
func RowFromCells(cells []sheet.Cell) RawRow {
	var row RawRow
	for i, col := range Columns {
		if i >= len(cells) {
			break
		}
		row[col.Field] = cells[i]
	}
	return row
}

// RowsFromCells maps a block of cell rows read in Columns order.
func RowsFromCells(block [][]sheet.Cell) []RawRow {
	rows := make([]RawRow, len(block))
	for i, cells := range block {
		rows[i] = RowFromCells(cells)
	}
	return rows
}

// NewRow builds a RawRow from field/cell pairs, mostly for callers that do not read sheets.
func NewRow(cells map[Field]sheet.Cell) RawRow {
	var row RawRow
	for f, c := range cells {
		if f >= 0 && f < fieldCount {
			row[f] = c
		}
	}
	return row
}
