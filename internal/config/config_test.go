package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DataDir != defaultDataDir {
		t.Fatalf("expected default data dir %s, got %s", defaultDataDir, cfg.DataDir)
	}
	if cfg.PublicDir != defaultPublicDir {
		t.Fatalf("expected default public dir %s, got %s", defaultPublicDir, cfg.PublicDir)
	}
	if cfg.WIAAWorkbook != "" || cfg.NCAAWorkbook != "" {
		t.Fatalf("expected no workbook paths by default, got %q/%q", cfg.WIAAWorkbook, cfg.NCAAWorkbook)
	}
	if cfg.SportsDB.BaseURL != defaultSportsDBBaseURL {
		t.Fatalf("expected default sportsdb base url %s, got %s", defaultSportsDBBaseURL, cfg.SportsDB.BaseURL)
	}
	if cfg.SportsDB.APIKey != defaultSportsDBAPIKey {
		t.Fatalf("expected free-tier api key, got %s", cfg.SportsDB.APIKey)
	}
	if cfg.SportsDB.RequestDelay != 2*time.Second {
		t.Fatalf("expected 2s request delay, got %s", cfg.SportsDB.RequestDelay)
	}
	if cfg.SportsDB.MaxRetries != 3 {
		t.Fatalf("expected 3 retries, got %d", cfg.SportsDB.MaxRetries)
	}
	if cfg.SportsDB.RetryDelay != 5*time.Second {
		t.Fatalf("expected 5s retry delay, got %s", cfg.SportsDB.RetryDelay)
	}
	if cfg.Logos.Dir != filepath.Join("public", "logos", "ncaa") {
		t.Fatalf("unexpected logo dir %s", cfg.Logos.Dir)
	}
	if cfg.Logos.MappingFile != filepath.Join("src", "data", "ncaa-logo-mapping.json") {
		t.Fatalf("unexpected mapping file %s", cfg.Logos.MappingFile)
	}
	if cfg.Logos.SaveEvery != defaultLogoSaveEvery {
		t.Fatalf("expected save every %d, got %d", defaultLogoSaveEvery, cfg.Logos.SaveEvery)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envWIAAWorkbook, "/tmp/wiaa.xlsm")
	t.Setenv(envNCAAWorkbook, "/tmp/ncaa.xlsm")
	t.Setenv(envDataDir, "out")
	t.Setenv(envPublicDir, "static")
	t.Setenv(envSportsDBBaseURL, "http://example.com/api")
	t.Setenv(envSportsDBAPIKey, "secret-key")
	t.Setenv(envSportsDBDelay, "250ms")
	t.Setenv(envSportsDBRetries, "5")
	t.Setenv(envMetricsTextfile, "/var/lib/node_exporter/bbmi.prom")

	cfg := Load()

	if cfg.WIAAWorkbook != "/tmp/wiaa.xlsm" || cfg.NCAAWorkbook != "/tmp/ncaa.xlsm" {
		t.Fatalf("expected workbook overrides, got %q/%q", cfg.WIAAWorkbook, cfg.NCAAWorkbook)
	}
	if cfg.DataDir != "out" {
		t.Fatalf("expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.Logos.Dir != filepath.Join("static", "logos", "ncaa") {
		t.Fatalf("expected logo dir under public override, got %s", cfg.Logos.Dir)
	}
	if cfg.Logos.RankingsFile != filepath.Join("out", "rankings", "rankings.json") {
		t.Fatalf("expected rankings file under data override, got %s", cfg.Logos.RankingsFile)
	}
	if cfg.SportsDB.BaseURL != "http://example.com/api" || cfg.SportsDB.APIKey != "secret-key" {
		t.Fatalf("expected sportsdb overrides, got %+v", cfg.SportsDB)
	}
	if cfg.SportsDB.RequestDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %s", cfg.SportsDB.RequestDelay)
	}
	if cfg.SportsDB.MaxRetries != 5 {
		t.Fatalf("expected 5 retries, got %d", cfg.SportsDB.MaxRetries)
	}
	if cfg.Metrics.TextfilePath != "/var/lib/node_exporter/bbmi.prom" {
		t.Fatalf("expected textfile override, got %s", cfg.Metrics.TextfilePath)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envSportsDBDelay, "not-a-duration")

	cfg := Load()

	if cfg.SportsDB.RequestDelay != defaultSportsDBDelay {
		t.Fatalf("expected default delay on invalid value, got %s", cfg.SportsDB.RequestDelay)
	}
}

func TestLoadNonPositiveRetriesFallsBack(t *testing.T) {
	t.Setenv(envSportsDBRetries, "0")

	cfg := Load()

	if cfg.SportsDB.MaxRetries != defaultSportsDBRetries {
		t.Fatalf("expected default retries on non-positive value, got %d", cfg.SportsDB.MaxRetries)
	}
}

func TestWithDataDirReRootsPaths(t *testing.T) {
	cfg := Load().WithDataDir("elsewhere")

	if cfg.DataDir != "elsewhere" {
		t.Fatalf("expected data dir elsewhere, got %s", cfg.DataDir)
	}
	if cfg.Logos.MappingFile != filepath.Join("elsewhere", "ncaa-logo-mapping.json") {
		t.Fatalf("expected mapping under new data dir, got %s", cfg.Logos.MappingFile)
	}
	if cfg.Logos.RankingsFile != filepath.Join("elsewhere", "rankings", "rankings.json") {
		t.Fatalf("expected rankings under new data dir, got %s", cfg.Logos.RankingsFile)
	}

	same := cfg.WithDataDir("")
	if same.DataDir != "elsewhere" {
		t.Fatalf("expected empty dir to be ignored, got %s", same.DataDir)
	}
}

func TestLoadLogSettings(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", " json ")

	cfg := Load()
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestWithPublicDirReRootsLogos(t *testing.T) {
	cfg := Load().WithPublicDir("site")

	if cfg.Logos.Dir != filepath.Join("site", "logos", "ncaa") {
		t.Fatalf("expected logos under new public dir, got %s", cfg.Logos.Dir)
	}
	if same := cfg.WithPublicDir(""); same.PublicDir != "site" {
		t.Fatalf("expected empty dir to be ignored, got %s", same.PublicDir)
	}
}
