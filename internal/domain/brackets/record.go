package brackets

import (
	"strconv"

	"bbmi-data-export/internal/domain/sheet"
)

// Record is one team's normalized bracket entry. Field order and JSON keys
// match the files the front-end reads.
type Record struct {
	Team                  string  `json:"Team"`
	Division              string  `json:"Division"`
	Region                string  `json:"Region"`
	WIAASeed              int     `json:"WIAASeed"`
	BBMISeed              int     `json:"BBMISeed"`
	Seed                  int     `json:"Seed"`
	Slug                  string  `json:"slug"`
	RegionalSemis         float64 `json:"RegionalSemis"`
	RegionalChampion      float64 `json:"RegionalChampion"`
	SectionalSemiFinalist float64 `json:"SectionalSemiFinalist"`
	SectionalFinalist     float64 `json:"SectionalFinalist"`
	StateQualifier        float64 `json:"StateQualifier"`
	StateFinalist         float64 `json:"StateFinalist"`
	StateChampion         float64 `json:"StateChampion"`
}

// CSVHeader is the header row of the bracket CSV files.
var CSVHeader = []string{
	"Team", "Division", "Region", "WIAASeed", "BBMISeed", "Seed", "slug",
	"RegionalSemis", "RegionalChampion", "SectionalSemiFinalist",
	"SectionalFinalist", "StateQualifier", "StateFinalist", "StateChampion",
}

// CSVRow renders r in CSVHeader order.
func (r Record) CSVRow() []string {
	return []string{
		r.Team,
		r.Division,
		r.Region,
		strconv.Itoa(r.WIAASeed),
		strconv.Itoa(r.BBMISeed),
		strconv.Itoa(r.Seed),
		r.Slug,
		sheet.FormatNumber(r.RegionalSemis),
		sheet.FormatNumber(r.RegionalChampion),
		sheet.FormatNumber(r.SectionalSemiFinalist),
		sheet.FormatNumber(r.SectionalFinalist),
		sheet.FormatNumber(r.StateQualifier),
		sheet.FormatNumber(r.StateFinalist),
		sheet.FormatNumber(r.StateChampion),
	}
}

// CSVRows renders records in order.
func CSVRows(records []Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.CSVRow()
	}
	return rows
}
