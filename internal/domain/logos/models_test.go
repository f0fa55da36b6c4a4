package logos

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Duke":                   "duke",
		"Texas A&M":              "texas-aandm",
		"St. John's":             "st-johns",
		"Miami (FL)":             "miami-fl",
		"  North Carolina  ":     "north-carolina",
		"UT Arlington/Mavericks": "ut-arlingtonmavericks",
	}

	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPickBasketball(t *testing.T) {
	results := []Team{
		{ID: "1", Name: "Duke", Sport: "Soccer"},
		{ID: "2", Name: "Duke", Sport: SportBasketball, Logo: "logo.png"},
		{ID: "3", Name: "Duke", Sport: SportBasketball, Badge: "badge.png"},
	}

	got, ok := PickBasketball(results)
	if !ok || got.ID != "2" {
		t.Fatalf("expected first basketball team, got %+v %v", got, ok)
	}
	if got.LogoURL() != "logo.png" {
		t.Fatalf("expected logo fallback, got %q", got.LogoURL())
	}
	if results[2].LogoURL() != "badge.png" {
		t.Fatalf("expected badge preference, got %q", results[2].LogoURL())
	}
	if _, ok := PickBasketball(results[:1]); ok {
		t.Fatal("expected no basketball team")
	}
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry("logos/ncaa", LogoFilename("Duke"), "134")
	if entry.Filename != "duke.png" || entry.Path != "/logos/ncaa/duke.png" || entry.SportsDBID != "134" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestStatsRemaining(t *testing.T) {
	if got := (Stats{Total: 10, Processed: 4}).Remaining(); got != 6 {
		t.Fatalf("expected 6 remaining, got %d", got)
	}
	if got := (Stats{Total: 3, Processed: 3}).Remaining(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}
