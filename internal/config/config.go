package config

import "path/filepath"

// Config holds runtime configuration for the export jobs.
type Config struct {
	WIAAWorkbook string
	NCAAWorkbook string
	DataDir      string
	PublicDir    string
	LogLevel     string
	LogFormat    string
	SportsDB     SportsDBConfig
	Logos        LogosConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		WIAAWorkbook: pathEnvOrDefault(envWIAAWorkbook, ""),
		NCAAWorkbook: pathEnvOrDefault(envNCAAWorkbook, ""),
		DataDir:      envOrDefault(envDataDir, defaultDataDir),
		PublicDir:    envOrDefault(envPublicDir, defaultPublicDir),
		LogLevel:     envOrDefault(envLogLevel, ""),
		LogFormat:    envOrDefault(envLogFormat, ""),
		SportsDB:     loadSportsDB(),
		Metrics:      loadMetrics(),
	}
	cfg.Logos = loadLogos(cfg.DataDir, cfg.PublicDir)
	return cfg
}

// WithDataDir re-roots every data-relative path at dir.
func (c Config) WithDataDir(dir string) Config {
	if dir == "" || dir == c.DataDir {
		return c
	}
	c.DataDir = dir
	c.Logos.MappingFile = filepath.Join(dir, defaultMappingFile)
	c.Logos.RankingsFile = filepath.Join(dir, filepath.FromSlash(defaultRankingsJSON))
	return c
}

// WithPublicDir re-roots the logo directory at dir.
func (c Config) WithPublicDir(dir string) Config {
	if dir == "" || dir == c.PublicDir {
		return c
	}
	c.PublicDir = dir
	c.Logos.Dir = filepath.Join(dir, filepath.FromSlash(defaultLogoSubdir))
	return c
}
