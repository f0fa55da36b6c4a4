package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domain "bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/store"
	"bbmi-data-export/internal/testutil"
)

func sportsDBServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/searchteams.php":
			if r.URL.Query().Get("t") != "Duke" {
				fmt.Fprint(w, `{"teams":null}`)
				return
			}
			fmt.Fprintf(w, `{"teams":[{"idTeam":"138","strTeam":"Duke","strSport":"Basketball","strBadge":%q}]}`, srv.URL+"/img/duke.png")
		case "/img/duke.png":
			_, _ = w.Write([]byte("PNG"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeRankings(t *testing.T, path string, teams ...string) {
	t.Helper()
	items := make([]string, len(teams))
	for i, team := range teams {
		items[i] = fmt.Sprintf(`{"team":%q}`, team)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("["+strings.Join(items, ",")+"]"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLogosFetchAndUpdateMapping(t *testing.T) {
	dir := isolateEnv(t)
	srv := sportsDBServer(t)
	t.Setenv("SPORTSDB_BASE_URL", srv.URL)
	t.Setenv("SPORTSDB_REQUEST_DELAY", "1ms")
	dataDir := filepath.Join(dir, "data")
	publicDir := filepath.Join(dir, "site")
	writeRankings(t, filepath.Join(dataDir, "rankings", "rankings.json"), "Duke", "Nowhere State", "Kansas")

	code, stdout, stderr := run(t, "--data-dir", dataDir, "logos", "fetch", "--public-dir", publicDir)
	if code != ExitSuccess {
		t.Fatalf("fetch failed %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "processed 3/3: downloaded 1") {
		t.Fatalf("unexpected fetch output %q", stdout)
	}
	logoDir := filepath.Join(publicDir, "logos", "ncaa")
	if data, err := os.ReadFile(filepath.Join(logoDir, "duke.png")); err != nil || string(data) != "PNG" {
		t.Fatalf("expected downloaded logo, got %q %v", data, err)
	}
	mappingFile := filepath.Join(dataDir, "ncaa-logo-mapping.json")
	mapping, err := store.LoadMapping(mappingFile)
	if err != nil {
		t.Fatal(err)
	}
	if mapping["Duke"].SportsDBID != "138" || len(mapping) != 1 {
		t.Fatalf("unexpected mapping %+v", mapping)
	}
	cache, err := store.LoadSearchCache(filepath.Join(dir, "logo-fetch-cache.json"))
	if err != nil || cache.Len() != 3 {
		t.Fatalf("expected every search cached, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(logoDir, "kansas.png"), []byte("PNG"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, stdout, stderr = run(t, "--data-dir", dataDir, "logos", "update-mapping", "--public-dir", publicDir)
	if code != ExitSuccess {
		t.Fatalf("update-mapping failed %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "1 added") || !strings.Contains(stdout, "+ Kansas") {
		t.Fatalf("unexpected update output %q", stdout)
	}
	mapping, _ = store.LoadMapping(mappingFile)
	if mapping["Kansas"] != domain.NewEntry("logos/ncaa", "kansas.png", "") {
		t.Fatalf("unexpected kansas entry %+v", mapping["Kansas"])
	}

	code, stdout, _ = run(t, "--data-dir", dataDir, "logos", "update-mapping", "--public-dir", publicDir)
	if code != ExitSuccess || !strings.Contains(stdout, "already up to date") {
		t.Fatalf("expected no-op update, got %d %q", code, stdout)
	}
}

func TestLogosFetchNeedsRankings(t *testing.T) {
	dir := isolateEnv(t)
	code, _, stderr := run(t, "logos", "fetch", "--rankings", filepath.Join(dir, "none.json"))
	if code != ExitError || !strings.Contains(stderr, "read rankings") {
		t.Fatalf("expected rankings error, got %d %q", code, stderr)
	}
}

func TestLogosFlagOverrides(t *testing.T) {
	dir := isolateEnv(t)
	rankings := filepath.Join(dir, "custom", "teams.json")
	mappingFile := filepath.Join(dir, "custom", "mapping.json")
	logoDir := filepath.Join(dir, "pub", "logos", "ncaa")
	writeRankings(t, rankings, "Duke")
	if err := os.MkdirAll(logoDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logoDir, "duke.png"), []byte("PNG"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := run(t, "logos", "update-mapping", "--rankings", rankings, "--mapping", mappingFile, "--public-dir", filepath.Join(dir, "pub"))
	if code != ExitSuccess {
		t.Fatalf("update-mapping failed %d: %s", code, stderr)
	}
	var m map[string]domain.MappingEntry
	testutil.ReadJSON(t, mappingFile, &m)
	if m["Duke"].Path != "/logos/ncaa/duke.png" {
		t.Fatalf("unexpected mapping %+v", m)
	}
}
