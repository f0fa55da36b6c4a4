package config

import "time"

const (
	envWIAAWorkbook    = "WIAA_WORKBOOK"
	envNCAAWorkbook    = "NCAA_WORKBOOK"
	envDataDir         = "DATA_DIR"
	envPublicDir       = "PUBLIC_DIR"
	envSportsDBBaseURL = "SPORTSDB_BASE_URL"
	envSportsDBAPIKey  = "SPORTSDB_API_KEY"
	envSportsDBDelay   = "SPORTSDB_REQUEST_DELAY"
	envSportsDBRetries = "SPORTSDB_MAX_RETRIES"
	envSportsDBBackoff = "SPORTSDB_RETRY_DELAY"
	envSportsDBTimeout = "SPORTSDB_TIMEOUT"
	envLogoCacheFile   = "LOGO_CACHE_FILE"
	envLogoSaveEvery   = "LOGO_SAVE_EVERY"
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsTextfile = "METRICS_TEXTFILE"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultServiceName     = "bbmi-data-export"
	defaultDataDir         = "src/data"
	defaultPublicDir       = "public"
	defaultLogoCache       = "logo-fetch-cache.json"
	defaultLogoSubdir      = "logos/ncaa"
	defaultMappingFile     = "ncaa-logo-mapping.json"
	defaultRankingsJSON    = "rankings/rankings.json"
	defaultSportsDBBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// Free-tier key published by TheSportsDB.
	defaultSportsDBAPIKey = "3"
	// Free tier throttles aggressively; two seconds between searches keeps a full run under the limit.
	defaultSportsDBDelay   = 2 * Duration(time.Second)
	defaultSportsDBRetries = 3
	defaultSportsDBBackoff = 5 * Duration(time.Second)
	defaultSportsDBTimeout = 15 * Duration(time.Second)
	defaultLogoSaveEvery   = 10
)
