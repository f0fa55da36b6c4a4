package config

import "path/filepath"

// LogosConfig locates the files the logo fetcher reads and writes.
type LogosConfig struct {
	Dir          string // downloaded .png files
	MappingFile  string // team name -> logo path mapping consumed by the front-end
	CacheFile    string // cached search responses
	RankingsFile string // source of team names
	SaveEvery    int    // persist progress after this many teams
}

func loadLogos(dataDir, publicDir string) LogosConfig {
	return LogosConfig{
		Dir:          filepath.Join(publicDir, filepath.FromSlash(defaultLogoSubdir)),
		MappingFile:  filepath.Join(dataDir, defaultMappingFile),
		CacheFile:    envOrDefault(envLogoCacheFile, defaultLogoCache),
		RankingsFile: filepath.Join(dataDir, filepath.FromSlash(defaultRankingsJSON)),
		SaveEvery:    intEnvOrDefault(envLogoSaveEvery, defaultLogoSaveEvery),
	}
}
