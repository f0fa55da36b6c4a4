package exports

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/testutil"
)

func TestNCAAScoresSkipsRowsWithoutDate(t *testing.T) {
	s := testutil.Sheet{}
	testutil.Column(s, "S", 6, day(2025, time.January, 10), 0, "1/12/2025", nil, day(2025, time.January, 14))
	testutil.Column(s, "J", 6, "Duke", "Zero", "Kansas", "Skipped", "Purdue")
	testutil.Column(s, "L", 6, "UNC", "Zero", "Baylor", "Skipped", "Iowa")
	testutil.Column(s, "F", 6, 80, 1, 70, 1, 66)
	testutil.Column(s, "G", 6, 75, 1, 68, 1, 59)
	wb := openFixture(t, map[string]testutil.Sheet{"Scores": s})
	dir := t.TempDir()
	svc := NewService(wb, output.NewWriter(dir), nil, nil)

	sum, err := svc.Run(context.Background(), NCAAScores())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.RowsRead != 5 || sum.RowsWritten != 3 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	rows := testutil.ReadCSV(t, filepath.Join(dir, "ncaa-team", "ncaa-scores.csv"))
	want := [][]string{
		{"GameDate", "HomeTeam", "AwayTeam", "HomeScore", "AwayScore"},
		{"2025-01-10", "Duke", "UNC", "80", "75"},
		{"2025-01-12", "Kansas", "Baylor", "70", "68"},
		{"2025-01-14", "Purdue", "Iowa", "66", "59"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestNCAAScoresEmptySheetWritesHeader(t *testing.T) {
	wb := openFixture(t, map[string]testutil.Sheet{"Scores": {"A1": "title"}})
	dir := t.TempDir()
	svc := NewService(wb, output.NewWriter(dir), nil, nil)

	if _, err := svc.Run(context.Background(), NCAAScores()); err != nil {
		t.Fatalf("run: %v", err)
	}
	rows := testutil.ReadCSV(t, filepath.Join(dir, "ncaa-team", "ncaa-scores.csv"))
	if len(rows) != 1 || rows[0][0] != "GameDate" {
		t.Fatalf("expected header only, got %v", rows)
	}
}

func TestGameDate(t *testing.T) {
	cases := []struct {
		name string
		cell sheet.Cell
		want string
		ok   bool
	}{
		{"absent", sheet.Absent(), "", false},
		{"zero", sheet.Number(0), "", false},
		{"blank text", sheet.Text("  "), "", false},
		{"date", sheet.Date(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 45717), "2025-03-01", true},
		{"us text", sheet.Text("3/2/2025"), "2025-03-02", true},
		{"free text", sheet.Text("TBD"), "TBD", true},
		{"serial", sheet.Number(45717), "45717", true},
	}
	for _, tc := range cases {
		got, ok := gameDate(tc.cell)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: gameDate = %q, %v", tc.name, got, ok)
		}
	}
}
