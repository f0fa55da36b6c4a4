package sheet

import (
	"math"
	"testing"
	"time"
)

func TestTextEmptyIsAbsent(t *testing.T) {
	if !Text("").IsAbsent() {
		t.Fatal("expected empty text to be absent")
	}
	if Text(" ").IsAbsent() {
		t.Fatal("expected whitespace text to be present")
	}
	if !Text("  ").IsBlank() {
		t.Fatal("expected whitespace text to be blank")
	}
	if Number(0).IsBlank() {
		t.Fatal("expected zero to be non-blank")
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{"absent", Absent(), ""},
		{"text", Text("1A"), "1A"},
		{"whole number", Number(2), "2"},
		{"fraction", Number(0.125), "0.125"},
		{"negative", Number(-3.5), "-3.5"},
		{"tiny", Number(0.00001), "1e-05"},
		{"date", Date(time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), 46040), "2026-01-18"},
		{"datetime", Date(time.Date(2026, 1, 18, 19, 30, 0, 0, time.UTC), 46040.8125), "2026-01-18 19:30:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cell.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCellFloat(t *testing.T) {
	cases := []struct {
		name   string
		cell   Cell
		want   float64
		wantOK bool
	}{
		{"number", Number(0.42), 0.42, true},
		{"text", Text(" 0.5 "), 0.5, true},
		{"scientific text", Text("1e-3"), 0.001, true},
		{"non numeric", Text("North"), 0, false},
		{"absent", Absent(), 0, false},
		{"nan text", Text("NaN"), 0, false},
		{"inf number", Number(math.Inf(1)), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.cell.Float()
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestCellInt(t *testing.T) {
	cases := []struct {
		name   string
		cell   Cell
		want   int
		wantOK bool
	}{
		{"whole number", Number(8), 8, true},
		{"fraction truncates", Number(8.9), 8, true},
		{"negative truncates toward zero", Number(-1.5), -1, true},
		{"integer text", Text(" 12 "), 12, true},
		{"decimal text rejected", Text("8.0"), 0, false},
		{"word", Text("eight"), 0, false},
		{"absent", Absent(), 0, false},
		{"overflow", Number(1e300), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.cell.Int()
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestParseOrDefaults(t *testing.T) {
	if got := FloatOr(Text("n/a"), 0); got != 0 {
		t.Fatalf("expected default 0, got %v", got)
	}
	if got := IntOr(Absent(), 7); got != 7 {
		t.Fatalf("expected default 7, got %v", got)
	}
	if got := IntOr(Number(3), 7); got != 3 {
		t.Fatalf("expected parsed 3, got %v", got)
	}

	upper := func(c Cell) (string, bool) {
		if c.IsBlank() {
			return "", false
		}
		return c.String() + "!", true
	}
	if got := ParseOr(Text("hi"), upper, "default"); got != "hi!" {
		t.Fatalf("expected custom parser result, got %q", got)
	}
	if got := ParseOr(Absent(), upper, "default"); got != "default" {
		t.Fatalf("expected custom parser default, got %q", got)
	}
}

func TestCellValue(t *testing.T) {
	if v := Absent().Value(); v != nil {
		t.Fatalf("expected nil for absent, got %v", v)
	}
	if v := Text("x").Value(); v != "x" {
		t.Fatalf("expected string value, got %v", v)
	}
	if v := Number(1.5).Value(); v != 1.5 {
		t.Fatalf("expected float value, got %v", v)
	}
	if v := Number(math.NaN()).Value(); v != nil {
		t.Fatalf("expected nil for NaN, got %v", v)
	}
}
